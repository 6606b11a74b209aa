package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := SignupRequest{
		Email:           "ada@example.com",
		Password:        "password1",
		ConfirmPassword: "password1",
		Name:            "Ada",
		Role:            "Member",
	}

	t.Run("valid", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("bad email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("weak passwords", func(t *testing.T) {
		for _, password := range []string{"short1", "allletters", "12345678"} {
			req := valid
			req.Password = password
			req.ConfirmPassword = password
			assert.ErrorIs(t, req.Validate(), errInvalidPassword, password)
		}
	})

	t.Run("password mismatch", func(t *testing.T) {
		req := valid
		req.ConfirmPassword = "password2"
		assert.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
	})
}

func TestProposeEventRequest_Validate(t *testing.T) {
	valid := ProposeEventRequest{
		Title:        "Intro to Embedded Systems",
		EventType:    "workshop",
		ProposedDate: "2026-04-15",
		ChapterID:    1,
	}

	t.Run("valid", func(t *testing.T) {
		req := valid
		require.NoError(t, req.Validate())
		assert.Equal(t, time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC), req.ParsedDate())
	})

	t.Run("unknown event type", func(t *testing.T) {
		req := valid
		req.EventType = "party"
		assert.Error(t, req.Validate())
	})

	t.Run("malformed date", func(t *testing.T) {
		req := valid
		req.ProposedDate = "15/04/2026"
		assert.Error(t, req.Validate())
	})

	t.Run("missing chapter", func(t *testing.T) {
		req := valid
		req.ChapterID = 0
		assert.Error(t, req.Validate())
	})
}

func TestSubmitApprovalRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := SubmitApprovalRequest{ApprovalType: "senior_core", Decision: "approved"}
		assert.NoError(t, req.Validate())
	})

	t.Run("unknown approval type", func(t *testing.T) {
		req := SubmitApprovalRequest{ApprovalType: "janitor", Decision: "approved"}
		assert.Error(t, req.Validate())
	})

	t.Run("unknown decision", func(t *testing.T) {
		req := SubmitApprovalRequest{ApprovalType: "treasurer", Decision: "maybe"}
		assert.Error(t, req.Validate())
	})
}

func TestProctorUpdateRequest_Validate(t *testing.T) {
	valid := ProctorUpdateRequest{
		ExecomID:    4,
		UpdateText:  "Solid progress on the sensor firmware this fortnight.",
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-15",
	}

	t.Run("valid", func(t *testing.T) {
		req := valid
		require.NoError(t, req.Validate())

		start, end := req.ParsedPeriod()
		assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("text too short", func(t *testing.T) {
		req := valid
		req.UpdateText = "ok"
		assert.Error(t, req.Validate())
	})
}

func TestSubmitDocumentRequest_Validate(t *testing.T) {
	valid := SubmitDocumentRequest{
		DocumentType: "final_document",
		Title:        "Event report",
		FileURL:      "https://drive.example.com/report.pdf",
	}

	t.Run("valid", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("bad url", func(t *testing.T) {
		req := valid
		req.FileURL = "::not a url::"
		assert.Error(t, req.Validate())
	})

	t.Run("unknown type", func(t *testing.T) {
		req := valid
		req.DocumentType = "spreadsheet"
		assert.Error(t, req.Validate())
	})
}
