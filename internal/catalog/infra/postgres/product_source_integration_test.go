//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	catalogpg "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/yamlfile"
	pkgpostgres "github.com/dwikikusuma/storefront/pkg/postgres"
)

type ProductRepoSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *sql.DB
	repo      *catalogpg.ProductRepo
}

func TestProductRepoSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ProductRepoSuite))
}

func (s *ProductRepoSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("storefront"),
		tcpostgres.WithUsername("shopping"),
		tcpostgres.WithPassword("shoppingpassword"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = pkgpostgres.Open(ctx, dsn)
	s.Require().NoError(err)

	s.repo, err = catalogpg.NewProductRepo(ctx, s.db)
	s.Require().NoError(err)
}

func (s *ProductRepoSuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
	if err := testcontainers.TerminateContainer(s.container); err != nil {
		s.T().Logf("terminate postgres container: %v", err)
	}
}

func (s *ProductRepoSuite) TestEmptyTable() {
	s.Require().NoError(s.repo.Replace(context.Background(), nil))

	got, err := s.repo.Load(context.Background())
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *ProductRepoSuite) TestReplaceKeepsOrder() {
	ctx := context.Background()
	want := []domain.Product{
		{ID: "z", Name: "Zinc Sheet", Category: "roofing", Price: 900},
		{ID: "a", Name: "Apex Cap", Description: "ridge", Category: "accessories", Price: 300},
	}
	s.Require().NoError(s.repo.Replace(ctx, want))

	got, err := s.repo.Load(ctx)
	s.Require().NoError(err)
	s.Equal(want, got)

	s.Require().NoError(s.repo.Replace(ctx, want[1:]))
	got, err = s.repo.Load(ctx)
	s.Require().NoError(err)
	s.Equal(want[1:], got)
}

func (s *ProductRepoSuite) TestSeededCatalogServes() {
	ctx := context.Background()
	products, err := yamlfile.NewFileSource("../../../../configs/catalog.yaml").Load(ctx)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Replace(ctx, products))

	svc, err := catalogapp.NewService(ctx, s.repo, 8)
	s.Require().NoError(err)
	s.Len(svc.Products(), len(products))
}
