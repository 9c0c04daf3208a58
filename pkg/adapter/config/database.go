// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/momeni/slotkeeper/pkg/adapter/db/postgres"
	"github.com/momeni/slotkeeper/pkg/core/repo"
)

// PasswordEnv is the environment variable which overrides the password
// which is read from the .pgpass file.
const PasswordEnv = "SKWEB_DB_PASSWORD"

// Database contains the PostgreSQL connection settings.
type Database struct {
	Host    string    // domain name or IP address of the DBMS server
	Port    int       // port number of the DBMS server
	Name    string    // database name, like skweb
	Role    repo.Role `yaml:",omitempty"` // defaults to repo.NormalRole
	PassDir string    `yaml:"pass-dir"`   // path of the passwords dir
}

// ValidateAndNormalize checks the mandatory database settings and
// fills the missing role by repo.NormalRole.
func (d *Database) ValidateAndNormalize() error {
	switch {
	case d.Host == "":
		return errors.New("database host is missing")
	case d.Port <= 0 || d.Port > 65535:
		return fmt.Errorf("database port is out of range: %d", d.Port)
	case d.Name == "":
		return errors.New("database name is missing")
	}
	if d.Role == "" {
		d.Role = repo.NormalRole
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information of d.
func (d Database) ConnectionPool(ctx context.Context) (
	*postgres.Pool, error,
) {
	u, err := d.ConnectionURL()
	if err != nil {
		return nil, err
	}
	p, err := postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s:%d/%s: %w",
			d.Host, d.Port, d.Name, err,
		)
	}
	return p, nil
}

// ConnectionURL returns the connection URL for the d.Role role.
// The password is taken from the PasswordEnv environment variable if
// it is set. Otherwise, the .pgpass file in d.PassDir is searched for
// a "host:port:name:role:password" line.
func (d Database) ConnectionURL() (string, error) {
	pass := os.Getenv(PasswordEnv)
	if pass == "" {
		path := filepath.Join(d.PassDir, ".pgpass")
		var err error
		pass, err = d.passwordFrom(path)
		if err != nil {
			return "", fmt.Errorf("using %q pass-file: %w", path, err)
		}
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(string(d.Role), pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

func (d Database) passwordFrom(path string) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, d.Role)
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			return line[len(prfx):], nil
		}
	}
	return "", errors.New("no matching password line")
}
