package server

import (
	"context"

	"prodstore/internal/models"
)

type staffContextKey struct{}

func contextWithStaff(ctx context.Context, staff *models.Staff) context.Context {
	return context.WithValue(ctx, staffContextKey{}, staff)
}

func staffFromContext(ctx context.Context) (*models.Staff, bool) {
	if ctx == nil {
		return nil, false
	}
	staff, ok := ctx.Value(staffContextKey{}).(*models.Staff)
	return staff, ok && staff != nil
}
