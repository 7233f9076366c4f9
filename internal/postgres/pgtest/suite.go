//go:build integration

// Package pgtest runs repository suites against a migrated Postgres container.
package pgtest

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ariefcatur/go-shop-admin.git/internal/postgres"
)

type BaseSuite struct {
	suite.Suite
	PgContainer *tcpostgres.PostgresContainer
	DB          *pgxpool.Pool
	Ctx         context.Context
}

func (s *BaseSuite) SetupSuite() {
	s.Ctx = context.Background()

	var err error
	s.PgContainer, err = tcpostgres.Run(
		s.Ctx,
		"postgres:17-alpine",
		tcpostgres.WithDatabase("shop_test"),
		tcpostgres.WithUsername("test_user"),
		tcpostgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)

	dsn, err := s.PgContainer.ConnectionString(s.Ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(postgres.Migrate(dsn))

	s.DB, err = postgres.Connect(s.Ctx, dsn)
	s.Require().NoError(err)
}

func (s *BaseSuite) TearDownSuite() {
	if s.DB != nil {
		s.DB.Close()
	}
	if s.PgContainer != nil {
		if err := s.PgContainer.Terminate(s.Ctx); err != nil {
			log.Printf("terminate postgres container: %v", err)
		}
	}
}

// SetupTest empties every table so each test starts from ids 1.
func (s *BaseSuite) SetupTest() {
	tables := []string{"order_items", "orders", "variants", "product_images", "product_colors", "product_sizes", "products", "colors", "sizes"}
	_, err := s.DB.Exec(s.Ctx, "TRUNCATE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE")
	s.Require().NoError(err)
}

func (s *BaseSuite) Count(table string) int {
	var n int
	s.Require().NoError(s.DB.QueryRow(s.Ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
