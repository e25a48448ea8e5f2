package service

import (
	"strings"

	apperrors "vidtube/pkg/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseObjectID validates a raw identifier before it can reach the store
func parseObjectID(raw, field string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewValidationError("invalid " + field)
	}
	return id, nil
}

// requireNonBlank rejects empty or whitespace-only required fields
func requireNonBlank(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError(field + " is required")
	}
	return nil
}
