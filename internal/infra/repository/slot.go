package repository

import (
	"context"
	"time"

	"room-slot-service/internal/domain/slot"
	"room-slot-service/internal/infra"
	"room-slot-service/internal/infra/repository/converter"
	sqlc "room-slot-service/internal/infra/sqlc/generated"
	"room-slot-service/internal/pkg/civil"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type SlotQueries interface {
	InsertSlots(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertSlotsParams) (int64, error)
	GetSlotForUpdate(ctx context.Context, db sqlc.DBTX, arg sqlc.GetSlotForUpdateParams) (sqlc.TimeSlot, error)
	ListSlotsForUpdate(ctx context.Context, db sqlc.DBTX, arg sqlc.ListSlotsForUpdateParams) ([]sqlc.TimeSlot, error)
	ListSlotsByDateForUpdate(ctx context.Context, db sqlc.DBTX, arg sqlc.ListSlotsByDateForUpdateParams) ([]sqlc.TimeSlot, error)
	ListSlotsByReservationIDForUpdate(ctx context.Context, db sqlc.DBTX, reservationID pgtype.Int8) ([]sqlc.TimeSlot, error)
	ListSlotsByRoomAndDate(ctx context.Context, db sqlc.DBTX, arg sqlc.ListSlotsByRoomAndDateParams) ([]sqlc.TimeSlot, error)
	ListExpiredPendingSlots(ctx context.Context, db sqlc.DBTX, arg sqlc.ListExpiredPendingSlotsParams) ([]sqlc.TimeSlot, error)
	ListCommittedSlotKeys(ctx context.Context, db sqlc.DBTX, arg sqlc.ListCommittedSlotKeysParams) ([]sqlc.ListCommittedSlotKeysRow, error)
	UpdateSlotState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateSlotStateParams) (int64, error)
	DeleteSlotsBefore(ctx context.Context, db sqlc.DBTX, slotDate pgtype.Date) (int64, error)
	DeleteAvailableSlotsInRange(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteAvailableSlotsInRangeParams) (int64, error)
}

type SlotRepository struct {
	queries SlotQueries
	db      sqlc.DBTX
}

func NewSlotRepository(queries SlotQueries, db sqlc.DBTX) *SlotRepository {
	return &SlotRepository{
		queries: queries,
		db:      db,
	}
}

func (r *SlotRepository) InsertMissing(ctx context.Context, slots []*slot.TimeSlot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	inserted := 0
	for _, params := range converter.SlotsToInsertParams(slots) {
		n, err := r.queries.InsertSlots(ctx, r.db, params)
		if err != nil {
			return inserted, infra.WrapRepoErr("failed to insert slots", err)
		}
		inserted += int(n)
	}
	return inserted, nil
}

func (r *SlotRepository) FindForUpdate(ctx context.Context, key slot.Key) (*slot.TimeSlot, error) {
	row, err := r.queries.GetSlotForUpdate(ctx, r.db, sqlc.GetSlotForUpdateParams{
		RoomID:   key.RoomID,
		SlotDate: pgconv.DateToPgtype(key.Date),
		SlotTime: pgconv.TimeOfDayToPgtype(key.Time),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr("slot not found: "+key.String(), err), errs.ErrSlotNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock slot", err)
	}
	return converter.SlotFromInfra(row)
}

func (r *SlotRepository) FindManyForUpdate(ctx context.Context, roomID int64, date civil.Date, times []civil.TimeOfDay) ([]*slot.TimeSlot, error) {
	rows, err := r.queries.ListSlotsForUpdate(ctx, r.db, sqlc.ListSlotsForUpdateParams{
		RoomID:    roomID,
		SlotDate:  pgconv.DateToPgtype(date),
		SlotTimes: pgconv.TimesOfDayToPgtype(times),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock slots", err)
	}
	return converter.SlotsFromInfra(rows)
}

func (r *SlotRepository) FindByDateForUpdate(ctx context.Context, roomID int64, date civil.Date) ([]*slot.TimeSlot, error) {
	rows, err := r.queries.ListSlotsByDateForUpdate(ctx, r.db, sqlc.ListSlotsByDateForUpdateParams{
		RoomID:   roomID,
		SlotDate: pgconv.DateToPgtype(date),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock slots of date", err)
	}
	return converter.SlotsFromInfra(rows)
}

func (r *SlotRepository) FindByReservationIDForUpdate(ctx context.Context, reservationID int64) ([]*slot.TimeSlot, error) {
	rows, err := r.queries.ListSlotsByReservationIDForUpdate(ctx, r.db, pgconv.Int64PtrToPgtype(&reservationID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock slots of reservation", err)
	}
	return converter.SlotsFromInfra(rows)
}

func (r *SlotRepository) FindExpiredPendingForUpdate(ctx context.Context, updatedBefore time.Time, limit int) ([]*slot.TimeSlot, error) {
	rows, err := r.queries.ListExpiredPendingSlots(ctx, r.db, sqlc.ListExpiredPendingSlotsParams{
		UpdatedBefore: pgconv.TimeToPgtype(updatedBefore),
		MaxRows:       pgconv.IntToInt32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock expired pending slots", err)
	}
	return converter.SlotsFromInfra(rows)
}

func (r *SlotRepository) ListByRoomAndDate(ctx context.Context, roomID int64, date civil.Date) ([]*slot.TimeSlot, error) {
	rows, err := r.queries.ListSlotsByRoomAndDate(ctx, r.db, sqlc.ListSlotsByRoomAndDateParams{
		RoomID:   roomID,
		SlotDate: pgconv.DateToPgtype(date),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots", err)
	}
	return converter.SlotsFromInfra(rows)
}

func (r *SlotRepository) CommittedKeys(ctx context.Context, roomID int64, start, end civil.Date) ([]slot.Key, error) {
	rows, err := r.queries.ListCommittedSlotKeys(ctx, r.db, sqlc.ListCommittedSlotKeysParams{
		RoomID:    roomID,
		StartDate: pgconv.DateToPgtype(start),
		EndDate:   pgconv.DateToPgtype(end),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list committed slot keys", err)
	}
	keys := make([]slot.Key, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, slot.Key{
			RoomID: roomID,
			Date:   pgconv.DateFromPgtype(row.SlotDate),
			Time:   pgconv.TimeOfDayFromPgtype(row.SlotTime),
		})
	}
	return keys, nil
}

func (r *SlotRepository) Save(ctx context.Context, s *slot.TimeSlot) error {
	n, err := r.queries.UpdateSlotState(ctx, r.db, converter.SlotToUpdateParams(s))
	if err != nil {
		return infra.WrapRepoErr("failed to update slot", err)
	}
	if n == 0 {
		return errs.Mark(infra.WrapRepoErr("slot vanished: "+s.Key().String(), nil, infra.KindNotFound), errs.ErrSlotNotFound)
	}
	return nil
}

func (r *SlotRepository) DeleteBefore(ctx context.Context, cutoff civil.Date) (int64, error) {
	n, err := r.queries.DeleteSlotsBefore(ctx, r.db, pgconv.DateToPgtype(cutoff))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete past slots", err)
	}
	return n, nil
}

func (r *SlotRepository) DeleteAvailableInRange(ctx context.Context, roomID int64, start, end civil.Date) (int64, error) {
	n, err := r.queries.DeleteAvailableSlotsInRange(ctx, r.db, sqlc.DeleteAvailableSlotsInRangeParams{
		RoomID:    roomID,
		StartDate: pgconv.DateToPgtype(start),
		EndDate:   pgconv.DateToPgtype(end),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete available slots", err)
	}
	return n, nil
}
