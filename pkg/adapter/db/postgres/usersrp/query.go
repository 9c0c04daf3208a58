// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrp implements the repo.Users interface using the users
// table, identifying the vehicle owners by their unique emails.
package usersrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres"
	"github.com/momeni/slotkeeper/pkg/core/model"
	"github.com/momeni/slotkeeper/pkg/core/repo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gUser struct {
	ID    uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name  string
	Email string
	Phone string
}

func (gu *gUser) TableName() string {
	return "users"
}

func (gu *gUser) Model() *model.User {
	return &model.User{
		ID:    gu.ID,
		Name:  gu.Name,
		Email: gu.Email,
		Phone: gu.Phone,
	}
}

func take(gdb *gorm.DB, query string, args ...any) (*model.User, error) {
	var gu gUser
	err := gdb.Where(query, args...).Take(&gu).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, repo.ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("query user: %w", err)
	}
	return gu.Model(), nil
}

func Find[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*model.User, error) {
	return take(q.GORM(ctx), "id = ?", id)
}

// FindOrCreate inserts u unless its email is taken, and then returns
// the stored user with that email. Concurrent calls with one email
// converge to the same (first inserted) user.
func FindOrCreate[Q postgres.Queryer](ctx context.Context, q Q, u model.User) (*model.User, error) {
	gu := gUser{
		ID:    uuid.New(),
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
	err := q.GORM(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&gu).Error
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return take(q.GORM(ctx), "email = ?", u.Email)
}
