package handler

import (
	"strings"
	"time"

	fmodels "lear/internal/filing/models"
	dErrors "lear/pkg/domain-errors"
)

// documentBody is a filing document as posted by the client.
type documentBody fmodels.Document

// Validate checks the envelope only. The filing service validates the content.
func (d *documentBody) Validate() error {
	if d == nil || fmodels.Document(*d).Root() == nil {
		return dErrors.New(dErrors.CodeBadRequest, "filing is missing or malformed")
	}
	return nil
}

func (d *documentBody) Document() fmodels.Document {
	return fmodels.Document(*d)
}

// reviewRequest is the body of POST .../review.
type reviewRequest struct {
	Decision string `json:"decision"`
	Comment  string `json:"comment"`

	event fmodels.Event
}

func (r *reviewRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Comment = strings.TrimSpace(r.Comment)
	if len(r.Comment) > 2000 {
		return dErrors.New(dErrors.CodeValidation, "comment must be at most 2000 characters")
	}
	switch e := fmodels.Event(strings.TrimSpace(r.Decision)); e {
	case fmodels.EventApprove, fmodels.EventReject, fmodels.EventRequestChange:
		r.event = e
	case "":
		return dErrors.New(dErrors.CodeValidation, "decision is required")
	default:
		return dErrors.New(dErrors.CodeValidation, "decision must be one of approve, reject, requestChange")
	}
	return nil
}

// paymentRequest is the payment callback body.
type paymentRequest struct {
	StatusCode  string     `json:"statusCode"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (r *paymentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.StatusCode = strings.ToUpper(strings.TrimSpace(r.StatusCode))
	if r.StatusCode == "" {
		return dErrors.New(dErrors.CodeValidation, "statusCode is required")
	}
	return nil
}

// completedAt is zero when the payment system omits the timestamp.
func (r *paymentRequest) completedAt() time.Time {
	if r.CompletedAt == nil {
		return time.Time{}
	}
	return r.CompletedAt.UTC()
}
