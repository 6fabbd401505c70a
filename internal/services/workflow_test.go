package services

import (
	"context"
	"testing"

	"github.com/delciomanico/Monanji/internal/apperr"
	"github.com/delciomanico/Monanji/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestApplyStatusUpdateValidation(t *testing.T) {
	svc := NewWorkflowService(nil, zap.NewNop().Sugar())
	actor := &models.User{ID: uuid.New(), Role: models.RoleInvestigator}

	tests := []struct {
		name string
		req  models.StatusUpdateRequest
	}{
		{"unrecognized status", models.StatusUpdateRequest{Status: "closed", Description: "Caso encerrado"}},
		{"empty status", models.StatusUpdateRequest{Status: "", Description: "Caso encerrado"}},
		{"description too short", models.StatusUpdateRequest{Status: models.StatusResolved, Description: "ok"}},
		{"whitespace-only description", models.StatusUpdateRequest{Status: models.StatusResolved, Description: "        "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Validation fails before any database access.
			_, err := svc.ApplyStatusUpdate(context.Background(), uuid.New(), actor, &tt.req)
			require.Error(t, err)

			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperr.KindValidation, appErr.Kind)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}
