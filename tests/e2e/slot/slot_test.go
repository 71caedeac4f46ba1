//go:build e2e

package slot_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/handler/dto/request"
	"room-slot-service/internal/handler/dto/response"
	"room-slot-service/internal/pkg/civil"
	"room-slot-service/internal/pkg/metrics"
	"room-slot-service/tests/common/builder"
	"room-slot-service/tests/common/dbtest"
	"room-slot-service/tests/common/httptest"
	"room-slot-service/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	policyURL       = "/api/rooms/%d/policy"
	closedDatesURL  = "/api/rooms/%d/policy/closed-dates"
	slotsURL        = "/api/rooms/%d/slots?date=%s"
	reservationsURL = "/api/rooms/%d/reservations"
	confirmURL      = "/api/rooms/%d/slots/confirm"
	cancelResURL    = "/api/reservations/%d/cancel"
	genRequestURL   = "/api/generation-requests/%d"
	cdRequestURL    = "/api/closed-date-update-requests/%d"
	runJobURL       = "/api/admin/jobs/%s/run"
)

type SlotSuite struct {
	e2e.SharedSuite
}

func (s *SlotSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestSlotSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(SlotSuite))
}

func everyDay(starts ...string) []request.WeeklySlotRequest {
	var out []request.WeeklySlotRequest
	for d := time.Sunday; d <= time.Saturday; d++ {
		for _, st := range starts {
			out = append(out, request.WeeklySlotRequest{Day: d.String(), Start: builder.MustTime(st)})
		}
	}
	return out
}

func tomorrow() civil.Date {
	return civil.DateOf(time.Now().UTC()).AddDays(1)
}

// setupRoom creates the policy over HTTP and waits for the initial window.
func (s *SlotSuite) setupRoom(t *testing.T, roomID int64) response.RequestResponse {
	t.Helper()
	return s.setupRoomAt(t, roomID, "09:00", "10:00")
}

func (s *SlotSuite) setupRoomAt(t *testing.T, roomID int64, starts ...string) response.RequestResponse {
	t.Helper()

	body := request.SetupPolicyRequest{WeeklySlots: everyDay(starts...)}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(policyURL, roomID), body)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var accepted response.RequestResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &accepted))
	require.Equal(t, "INITIAL", accepted.Kind)

	return s.waitForRequest(t, fmt.Sprintf(genRequestURL, accepted.ID))
}

func (s *SlotSuite) waitForRequest(t *testing.T, url string) response.RequestResponse {
	t.Helper()

	var final response.RequestResponse
	require.Eventually(t, func() bool {
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil)
		if w.Code != http.StatusOK {
			return false
		}
		var res response.RequestResponse
		if err := httptest.DecodeResponseBody(t, w.Body, &res); err != nil {
			return false
		}
		final = res
		return res.Status == "COMPLETED" || res.Status == "FAILED"
	}, 10*time.Second, 50*time.Millisecond, "request did not finish")
	return final
}

func (s *SlotSuite) listSlots(t *testing.T, roomID int64, date civil.Date) []response.SlotResponse {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(slotsURL, roomID, date), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var slots []response.SlotResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &slots))
	return slots
}

func (s *SlotSuite) waitForTopics(t *testing.T, want ...string) {
	t.Helper()

	require.Eventually(t, func() bool {
		got := s.Publisher.Topics()
		return cmp.Diff(want, got, cmpopts.SortSlices(func(a, b string) bool { return a < b })) == ""
	}, 5*time.Second, 20*time.Millisecond, "published topics: %v", s.Publisher.Topics())
}

// =============================================================================
// TestPolicySetup
// =============================================================================

func (s *SlotSuite) TestPolicySetup() {
	s.Run("Normal case: setup materializes the rolling window", func() {
		t := s.T()

		done := s.setupRoom(t, 1)

		require.Equal(t, "COMPLETED", done.Status)
		require.NotNil(t, done.ResultCount)
		require.Equal(t, 28, *done.ResultCount, "14 days x 2 starts")
		require.Equal(t, 28, dbtest.CountSlots(t, s.DB, 1, "AVAILABLE"))

		slots := s.listSlots(t, 1, tomorrow())
		got := make([]string, 0, len(slots))
		for _, sl := range slots {
			got = append(got, sl.StartTime.String()+" "+sl.Status)
		}
		require.Equal(t, []string{"09:00 AVAILABLE", "10:00 AVAILABLE"}, got)

		s.waitForTopics(t, outbox.TopicSlotGenerationRequested)
	})

	s.Run("Error case: second setup for the same room conflicts", func() {
		t := s.T()
		s.setupRoom(t, 1)

		body := request.SetupPolicyRequest{WeeklySlots: everyDay("11:00")}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(policyURL, 1), body)

		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Operating policy already exists")
	})
}

// =============================================================================
// TestReservationLifecycle
// =============================================================================

func (s *SlotSuite) TestReservationLifecycle() {
	s.Run("Normal case: hold, confirm and cancel", func() {
		t := s.T()
		s.setupRoom(t, 2)
		date := tomorrow()

		reserve := request.ReserveSlotsRequest{
			Date:          date,
			StartTimes:    []civil.TimeOfDay{builder.MustTime("09:00"), builder.MustTime("10:00")},
			ReservationID: 500,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reservationsURL, 2), reserve)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		require.Equal(t, 2, dbtest.CountSlots(t, s.DB, 2, "PENDING"))

		// Second hold on the same slots is refused and changes nothing
		reserve.ReservationID = 501
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reservationsURL, 2), reserve)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, 2),
			request.SlotKeyRequest{Date: date, StartTime: ptr(builder.MustTime("09:00"))})
		httptest.AssertNoContent(t, w)

		slots := s.listSlots(t, 2, date)
		require.Len(t, slots, 2)
		require.Equal(t, "RESERVED", slots[0].Status)
		require.Equal(t, "PENDING", slots[1].Status)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelResURL, 500), nil)
		var cancelled response.SlotsChangedResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
		require.Equal(t, 2, cancelled.Slots)
		require.Equal(t, 28, dbtest.CountSlots(t, s.DB, 2, "AVAILABLE"))

		s.waitForTopics(t,
			outbox.TopicSlotGenerationRequested,
			outbox.TopicSlotReserved,
			outbox.TopicSlotConfirmed,
			outbox.TopicSlotCancelled,
			outbox.TopicSlotCancelled,
		)
		require.Zero(t, dbtest.CountOutbox(t, s.DB, outbox.TopicSlotCancelled, "PENDING"))
	})

	s.Run("Error case: unknown slot", func() {
		t := s.T()
		s.setupRoom(t, 2)

		reserve := request.ReserveSlotsRequest{
			Date:          tomorrow(),
			StartTimes:    []civil.TimeOfDay{builder.MustTime("09:00"), builder.MustTime("14:00")},
			ReservationID: 600,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reservationsURL, 2), reserve)

		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Slot not found")
		require.Zero(t, dbtest.CountSlots(t, s.DB, 2, "PENDING"))
	})
}

// =============================================================================
// TestConcurrentReservations
// =============================================================================

func (s *SlotSuite) TestConcurrentReservations() {
	s.Run("Normal case: overlapping holds serialize on row locks", func() {
		t := s.T()
		const roomID, rounds = 5, 10
		s.setupRoomAt(t, roomID, "09:00", "10:00", "11:00")
		deadlocksBefore := promtestutil.ToFloat64(metrics.TxRetriesTotal.WithLabelValues("40P01"))

		for i := range rounds {
			date := tomorrow().AddDays(i)
			// B lists the shared slot first so the two requests name it in
			// opposite orders.
			a := request.ReserveSlotsRequest{
				Date:          date,
				StartTimes:    []civil.TimeOfDay{builder.MustTime("09:00"), builder.MustTime("10:00")},
				ReservationID: int64(1000 + 2*i),
			}
			b := request.ReserveSlotsRequest{
				Date:          date,
				StartTimes:    []civil.TimeOfDay{builder.MustTime("11:00"), builder.MustTime("10:00")},
				ReservationID: int64(1001 + 2*i),
			}

			codes := s.reserveConcurrently(t, roomID, a, b)

			require.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, codes, "round %d", i)
			winner, loser := a.ReservationID, b.ReservationID
			if codes[1] == http.StatusCreated {
				winner, loser = loser, winner
			}
			require.Equal(t, 2, dbtest.CountHeldBy(t, s.DB, winner), "round %d", i)
			require.Zero(t, dbtest.CountHeldBy(t, s.DB, loser), "round %d: loser must hold nothing", i)
		}

		require.Equal(t, 2*rounds, dbtest.CountSlots(t, s.DB, roomID, "PENDING"))
		require.Equal(t, deadlocksBefore,
			promtestutil.ToFloat64(metrics.TxRetriesTotal.WithLabelValues("40P01")),
			"holds must not deadlock")
	})
}

// reserveConcurrently sends every hold at the same moment and returns the
// status codes in argument order.
func (s *SlotSuite) reserveConcurrently(t *testing.T, roomID int64, reqs ...request.ReserveSlotsRequest) []int {
	t.Helper()

	bodies := make([][]byte, len(reqs))
	for i, r := range reqs {
		b, err := json.Marshal(r)
		require.NoError(t, err)
		bodies[i] = b
	}

	url := fmt.Sprintf(reservationsURL, roomID)
	codes := make([]int, len(reqs))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range bodies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := nethttptest.NewRequest(http.MethodPost, url, bytes.NewReader(bodies[i]))
			req.Header.Set("Content-Type", "application/json")
			w := nethttptest.NewRecorder()
			<-start
			s.Router.ServeHTTP(w, req)
			codes[i] = w.Code
		}()
	}
	close(start)
	wg.Wait()
	return codes
}

// =============================================================================
// TestPendingExpiry
// =============================================================================

func (s *SlotSuite) TestPendingExpiry() {
	s.Run("Normal case: stale holds are released by the reclaim job", func() {
		t := s.T()
		s.setupRoom(t, 3)

		reserve := request.ReserveSlotsRequest{
			Date:          tomorrow(),
			StartTimes:    []civil.TimeOfDay{builder.MustTime("10:00")},
			ReservationID: 700,
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reservationsURL, 3), reserve)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		dbtest.AgeSlotHold(t, s.DB, 700, 11*time.Minute)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(runJobURL, "pending-expiry-reclaim"), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		require.Zero(t, dbtest.CountSlots(t, s.DB, 3, "PENDING"))
		s.waitForTopics(t,
			outbox.TopicSlotGenerationRequested,
			outbox.TopicSlotReserved,
			outbox.TopicSlotRestored,
		)
	})
}

// =============================================================================
// TestClosedDates
// =============================================================================

func (s *SlotSuite) TestClosedDates() {
	s.Run("Normal case: closing a day closes its available slots", func() {
		t := s.T()
		s.setupRoom(t, 4)
		date := tomorrow()

		body := request.SetClosedDatesRequest{ClosedDates: []request.ClosedDateRequest{{StartDate: date}}}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(closedDatesURL, 4), body)
		require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

		var accepted response.RequestResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &accepted))
		done := s.waitForRequest(t, fmt.Sprintf(cdRequestURL, accepted.ID))
		require.Equal(t, "COMPLETED", done.Status)

		for _, sl := range s.listSlots(t, 4, date) {
			require.Equal(t, "CLOSED", sl.Status)
		}
		require.Equal(t, 2, dbtest.CountSlots(t, s.DB, 4, "CLOSED"))
	})
}

func ptr[T any](v T) *T { return &v }
