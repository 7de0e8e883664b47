/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package dataaccess recognizes errors that originate in a data store.
//
// The default resolver policy uses Is as the rule for kind.DataAccess, so a
// repository can return driver errors unchanged and still get a
// data-access response at the boundary.
package dataaccess

import (
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// sqlSentinels and gormSentinels are matched with errors.Is against every
// error in the chain.
var sqlSentinels = []error{
	sql.ErrNoRows,
	sql.ErrConnDone,
	sql.ErrTxDone,
	driver.ErrBadConn,
}

// gorm.ErrRecordNotFound is a data-access error: a missing row that the
// application did not translate into a not-found error is a persistence
// problem, not a client one.
var gormSentinels = []error{
	gorm.ErrRecordNotFound,
	gorm.ErrInvalidTransaction,
	gorm.ErrInvalidData,
	gorm.ErrInvalidDB,
	gorm.ErrDuplicatedKey,
	gorm.ErrForeignKeyViolated,
}

// Is reports whether err (or anything it wraps) is a data-access failure.
// A nil error is not.
func Is(err error) bool {
	if err == nil {
		return false
	}
	if isAny(err, sqlSentinels) || isAny(err, gormSentinels) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	// redis.Error is implemented by server replies and by redis.Nil.
	var redisErr redis.Error
	return errors.As(err, &redisErr)
}

// Source names the store family err came from: "sql", "postgres", "gorm",
// "redis", or "" when Is(err) is false. It is attached to exception log
// lines.
func Source(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	var connErr *pgconn.ConnectError
	if errors.As(err, &pgErr) || errors.As(err, &connErr) {
		return "postgres"
	}
	var redisErr redis.Error
	if errors.As(err, &redisErr) {
		return "redis"
	}
	if isAny(err, gormSentinels) {
		return "gorm"
	}
	if isAny(err, sqlSentinels) {
		return "sql"
	}
	return ""
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
