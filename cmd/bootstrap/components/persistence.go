package components

import (
	sqlc "room-slot-service/internal/infra/sqlc/generated"
	"room-slot-service/internal/infra/uow"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Repositories are built per transaction inside the unit of work, so the
// graph only needs the pool and the query set.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewSQLQueries,
		uow.NewPostgresUoW,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}
