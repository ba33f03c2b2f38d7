package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"unitconv/internal/conversion/models"
	"unitconv/internal/conversion/ports/mocks"
	"unitconv/internal/conversion/store/cache"
	"unitconv/internal/conversion/store/history"
	id "unitconv/pkg/domain"
	dErrors "unitconv/pkg/domain-errors"
	"unitconv/pkg/platform/audit"
	auditmemory "unitconv/pkg/platform/audit/store/memory"
	"unitconv/pkg/platform/audit/publisher"
	"unitconv/pkg/platform/sentinel"
	"unitconv/pkg/requestcontext"
	"unitconv/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockCache   *mocks.MockCache
	mockHistory *mocks.MockHistoryStore
	mockAudit   *mocks.MockAuditPublisher
	service     *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCache = mocks.NewMockCache(s.ctrl)
	s.mockHistory = mocks.NewMockHistoryStore(s.ctrl)
	s.mockAudit = mocks.NewMockAuditPublisher(s.ctrl)
	svc, err := New(s.mockCache, s.mockHistory, WithAuditPublisher(s.mockAudit), WithParallelism(1))
	s.Require().NoError(err)
	s.service = svc
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) TestNew() {
	s.Run("cache is required", func() {
		_, err := New(nil, s.mockHistory)
		s.Require().ErrorContains(err, "cache is required")
	})

	s.Run("history store is required", func() {
		_, err := New(s.mockCache, nil)
		s.Require().ErrorContains(err, "history store is required")
	})
}

func (s *ServiceSuite) TestConvert() {
	ctx := context.Background()

	s.Run("miss computes, caches and records", func() {
		s.mockCache.EXPECT().Get(gomock.Any(), "speed:70mi/h->km/h").Return("", sentinel.ErrNotFound)
		s.mockCache.EXPECT().Set(gomock.Any(), "speed:70mi/h->km/h", gomock.Any(), gomock.Any()).Return(nil)
		s.mockHistory.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, records ...models.Record) error {
				s.Require().Len(records, 1)
				s.Equal("112.65408km/h", records[0].Result)
				s.False(records[0].ID.IsNil())
				return nil
			})
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, event audit.Event) error {
				s.Equal(audit.EventConversionPerformed, event.Action)
				return nil
			})

		result, err := s.service.Convert(ctx, models.ConvertRequest{
			Kind:    id.KindSpeed,
			Value:   "70 mph",
			Targets: []string{"km/h"},
		})
		s.Require().NoError(err)
		s.Equal("70mi/h", result.Input)
		s.Require().Len(result.Conversions, 1)
		s.Equal("112.65408km/h", result.Conversions[0].Result)
		s.Equal("112.65408km/h (Kilometer per Hour)", result.Conversions[0].Long)
	})

	s.Run("hit is served from cache", func() {
		cached := `{"target":"cm","result":"1cm","long":"1cm (Centimeter)"}`
		s.mockCache.EXPECT().Get(gomock.Any(), "length:10mm->cm").Return(cached, nil)
		s.mockHistory.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.service.Convert(ctx, models.ConvertRequest{
			Kind:    id.KindLength,
			Value:   "10mm",
			Targets: []string{"cm"},
		})
		s.Require().NoError(err)
		s.Equal("1cm", result.Conversions[0].Result)
	})

	s.Run("cache failure still converts", func() {
		s.mockCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", errors.New("redis down"))
		s.mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
		s.mockHistory.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.service.Convert(ctx, models.ConvertRequest{
			Kind:    id.KindMass,
			Value:   "1500g",
			Targets: []string{"kg"},
		})
		s.Require().NoError(err)
		s.Equal("1.5kg", result.Conversions[0].Result)
	})

	s.Run("history failure does not fail the request", func() {
		s.mockCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", sentinel.ErrNotFound)
		s.mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.mockHistory.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.service.Convert(ctx, models.ConvertRequest{
			Kind:    id.KindTime,
			Value:   "2h",
			Targets: []string{"s"},
		})
		s.Require().NoError(err)
		s.Equal("7200s", result.Conversions[0].Result)
	})

	s.Run("duplicate targets collapse to one conversion", func() {
		s.mockCache.EXPECT().Get(gomock.Any(), "length:1km->m").Return("", sentinel.ErrNotFound)
		s.mockCache.EXPECT().Set(gomock.Any(), "length:1km->m", gomock.Any(), gomock.Any()).Return(nil)
		s.mockHistory.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.service.Convert(ctx, models.ConvertRequest{
			Kind:    id.KindLength,
			Value:   "1km",
			Targets: []string{"m", "M", "meter"},
		})
		s.Require().NoError(err)
		s.Len(result.Conversions, 1)
	})

	s.Run("unparseable value is rejected", func() {
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, event audit.Event) error {
				s.Equal(audit.EventInputRejected, event.Action)
				s.Equal("10 parsecs", event.Input)
				return nil
			})

		_, err := s.service.Convert(ctx, models.ConvertRequest{Kind: id.KindLength, Value: "10 parsecs"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown target unit is rejected", func() {
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.Convert(ctx, models.ConvertRequest{
			Kind:    id.KindLength,
			Value:   "10mm",
			Targets: []string{"cm", "furlong"},
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(err.Error(), "furlong")
	})

	s.Run("unsupported dimension is rejected", func() {
		_, err := s.service.Convert(ctx, models.ConvertRequest{Kind: id.Kind("volume"), Value: "1l"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestTravel() {
	ctx := context.Background()

	s.Run("distance after a duration", func() {
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.service.Travel(ctx, models.TravelRequest{Speed: "60km/h", Duration: "2h"})
		s.Require().NoError(err)
		s.Equal("120km", result.Distance)
		s.Equal("2h", result.Duration)
	})

	s.Run("time taken for a distance", func() {
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.service.Travel(ctx, models.TravelRequest{Speed: "60km/h", Distance: "120km"})
		s.Require().NoError(err)
		s.Equal("2h", result.Duration)
	})

	s.Run("zero speed never arrives", func() {
		_, err := s.service.Travel(ctx, models.TravelRequest{Speed: "0km/h", Distance: "1km"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("exactly one of duration or distance", func() {
		_, err := s.service.Travel(ctx, models.TravelRequest{Speed: "60km/h"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = s.service.Travel(ctx, models.TravelRequest{Speed: "60km/h", Duration: "1h", Distance: "1km"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestAccelerate() {
	ctx := context.Background()

	s.Run("constant rate from rest", func() {
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.service.Accelerate(ctx, models.AccelerateRequest{Speed: "0m/s", Rate: "2", Duration: "5s"})
		s.Require().NoError(err)
		s.Equal("10m/s", result.Final)
		s.Equal("2m/s²", result.Rate)
	})

	s.Run("bad rate", func() {
		_, err := s.service.Accelerate(ctx, models.AccelerateRequest{Speed: "0m/s", Rate: "fast", Duration: "5s"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestCompare() {
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	result, err := s.service.Compare(context.Background(), models.CompareRequest{
		Kind:  id.KindLength,
		Left:  "10mm",
		Right: "1cm",
	})
	s.Require().NoError(err)
	s.True(result.Equal)
	s.Equal(0, result.Cmp)
}

func (s *ServiceSuite) TestHistory() {
	ctx := context.Background()

	s.Run("non-positive limit uses the default", func() {
		s.mockHistory.EXPECT().ListRecent(gomock.Any(), 50).Return(nil, nil)
		_, err := s.service.History(ctx, 0)
		s.Require().NoError(err)
	})

	s.Run("limit above the maximum is rejected", func() {
		_, err := s.service.History(ctx, 501)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("store failure is internal", func() {
		s.mockHistory.EXPECT().ListRecent(gomock.Any(), 10).Return(nil, errors.New("db down"))
		_, err := s.service.History(ctx, 10)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestListUnits() {
	infos, err := s.service.ListUnits(context.Background(), id.KindSpeed)
	s.Require().NoError(err)
	s.Require().Len(infos, 3)
	s.Equal("mi/h", infos[0].Short)

	_, err = s.service.ListUnits(context.Background(), id.Kind("volume"))
	s.Require().Error(err)
}

func TestConvertScenario(t *testing.T) {
	testutil.Given(t, "in-memory stores and a synchronous audit publisher", func(t *testing.T) {
		auditStore := auditmemory.NewInMemoryStore()
		pub := publisher.NewPublisher(auditStore)
		svc, err := New(cache.NewInMemory(), history.NewInMemory(10), WithAuditPublisher(pub))
		require.NoError(t, err)

		at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		ctx := requestcontext.WithTime(requestcontext.WithRequestID(context.Background(), "req-1"), at)

		testutil.When(t, "a length is converted to every unit", func(t *testing.T) {
			result, err := svc.Convert(ctx, models.ConvertRequest{Kind: id.KindLength, Value: "1 mile"})
			require.NoError(t, err)

			testutil.Then(t, "each catalog unit has a result", func(t *testing.T) {
				assert.Len(t, result.Conversions, 8)
			})

			testutil.Then(t, "history holds one record per target", func(t *testing.T) {
				records, err := svc.History(ctx, 0)
				require.NoError(t, err)
				require.Len(t, records, 8)
				assert.Equal(t, "req-1", records[0].RequestID)
				assert.Equal(t, at, records[0].CreatedAt)
			})

			testutil.Then(t, "audit events carry the request id", func(t *testing.T) {
				events, err := auditStore.ListAll(ctx)
				require.NoError(t, err)
				require.Len(t, events, 8)
				assert.Equal(t, "req-1", events[0].RequestID)
			})
		})

		testutil.When(t, "the same conversion is repeated", func(t *testing.T) {
			first, err := svc.Convert(ctx, models.ConvertRequest{Kind: id.KindLength, Value: "1mi", Targets: []string{"km"}})
			require.NoError(t, err)
			second, err := svc.Convert(ctx, models.ConvertRequest{Kind: id.KindLength, Value: "1mi", Targets: []string{"km"}})
			require.NoError(t, err)

			testutil.Then(t, "results match", func(t *testing.T) {
				assert.Equal(t, "1.609344km", first.Conversions[0].Result)
				assert.Equal(t, first, second)
			})
		})
	})
}
