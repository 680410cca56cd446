package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/kecicz/activerecord-fb-adapter/internal/utils"
)

func TestFromError(t *testing.T) {
	status, body := FromError(fmt.Errorf("reading: %w", utils.NewNotFoundError("table users")), "cid")
	if status != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", status)
	}
	if body.Success || body.Error.Code != utils.ErrCodeNotFound || body.CorrelationID != "cid" {
		t.Errorf("Unexpected body %+v", body)
	}

	status, body = FromError(errors.New("driver panic: bad packet"), "cid")
	if status != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", status)
	}
	if body.Error.Message != "An internal error occurred" {
		t.Errorf("Expected internal error details to be hidden, got %q", body.Error.Message)
	}
}

func TestSuccessResponse(t *testing.T) {
	body := SuccessResponse([]string{"users"}, "cid")
	if !body.Success || body.Error != nil {
		t.Errorf("Unexpected body %+v", body)
	}
	if body.Timestamp.IsZero() {
		t.Error("Expected a timestamp")
	}
}
