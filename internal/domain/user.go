package domain

import (
	"strings"
	"time"
)

// Role levels, top of the hierarchy first.
const (
	RoleLevelSeniorCore        = 1
	RoleLevelViceCore          = 2
	RoleLevelChapterLeadership = 3
	RoleLevelTeams             = 4
	RoleLevelExecom            = 5
)

// Student-branch wide role names.
const (
	RoleSBChair          = "SB Chair"
	RoleSBSecretary      = "SB Secretary"
	RoleSBTreasurer      = "SB Treasurer"
	RoleSBTechnicalHead  = "SB Technical Head"
	RoleSBConvener       = "SB Convener"
	RoleBranchCounsellor = "Branch Counsellor"

	RoleChapterChair     = "Chair"
	RoleChapterViceChair = "Vice Chair"
	RoleChapterSecretary = "Secretary"
	RoleChapterTreasurer = "Treasurer"

	RolePRHead            = "PR Head"
	RoleDesignHead        = "Design Head"
	RoleDocumentationHead = "Documentation Head"
	RoleCoverageHead      = "Coverage Head"
)

type Role struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Chapter struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	ChapterID *uint     `json:"chapter_id"`
	Chapter   *Chapter  `json:"chapter,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsSeniorCoreApprover reports whether the role supplies quorum approvals
// for the senior-core stage. The counsellor sits at level 1 too but has a
// dedicated stage, so it is not part of the quorum pool.
func IsSeniorCoreApprover(roleName string) bool {
	switch roleName {
	case RoleSBChair, RoleSBSecretary, RoleSBTreasurer, RoleSBTechnicalHead, RoleSBConvener:
		return true
	}
	return false
}

func IsBranchCounsellor(roleName string) bool {
	return roleName == RoleBranchCounsellor
}

func IsSBTreasurer(roleName string) bool {
	return roleName == RoleSBTreasurer
}

func IsSBSecretary(roleName string) bool {
	return roleName == RoleSBSecretary
}

// CanProposeEvents limits proposal creation to chapter leadership.
func CanProposeEvents(roleName string) bool {
	return roleName == RoleChapterChair ||
		roleName == RoleChapterViceChair ||
		roleName == RoleChapterSecretary
}

// CanAssignProctors limits proctor mapping changes to the SB Chair, the
// SB Secretary and chapter chairs. Chapter chairs are additionally scoped
// to their own chapter, which the service enforces.
func CanAssignProctors(roleName string) bool {
	return roleName == RoleSBChair ||
		roleName == RoleSBSecretary ||
		roleName == RoleChapterChair
}

// IsChapterScopedAssigner reports whether the assigner role may only touch
// mappings inside its own chapter.
func IsChapterScopedAssigner(roleName string) bool {
	return roleName == RoleChapterChair
}

func IsTeamHead(roleName string, team TeamType) bool {
	switch team {
	case TeamDocumentation:
		return roleName == RoleDocumentationHead
	case TeamPR:
		return roleName == RolePRHead
	case TeamDesign:
		return roleName == RoleDesignHead
	case TeamCoverage:
		return roleName == RoleCoverageHead
	}
	return false
}

// TeamHeadRoles lists the roles notified when an event is approved.
func TeamHeadRoles() []string {
	return []string{RolePRHead, RoleDesignHead, RoleDocumentationHead, RoleCoverageHead}
}

// RoleLevel derives the hierarchy level from a role name. Seed data stores
// the level on the roles table; this is the fallback used when matching
// free-form names.
func RoleLevel(roleName string) int {
	upper := strings.ToUpper(roleName)
	vice := strings.Contains(upper, "VICE")

	if strings.Contains(upper, "COUNSELLOR") {
		return RoleLevelSeniorCore
	}
	if strings.Contains(upper, "SB") && !vice {
		if strings.Contains(upper, "CHAIR") ||
			strings.Contains(upper, "SECRETARY") ||
			strings.Contains(upper, "TREASURER") ||
			strings.Contains(upper, "TECHNICAL") ||
			strings.Contains(upper, "CONVENER") {
			return RoleLevelSeniorCore
		}
	}
	if vice && (strings.Contains(upper, "CHAIR") ||
		strings.Contains(upper, "SECRETARY") ||
		strings.Contains(upper, "TREASURER") ||
		strings.Contains(upper, "TECHNICAL") ||
		strings.Contains(upper, "CONVENER")) {
		return RoleLevelViceCore
	}
	if strings.Contains(upper, "HEAD") {
		return RoleLevelTeams
	}
	if strings.Contains(upper, "CHAIR") ||
		strings.Contains(upper, "SECRETARY") ||
		strings.Contains(upper, "TREASURER") {
		return RoleLevelChapterLeadership
	}

	return RoleLevelExecom
}
