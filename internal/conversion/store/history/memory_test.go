package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"unitconv/internal/conversion/models"
	id "unitconv/pkg/domain"
)

type InMemorySuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory(3)
	s.ctx = context.Background()
}

func record(input string) models.Record {
	return models.Record{
		ID:        id.NewConversionID(),
		Kind:      id.KindLength,
		Input:     input,
		Target:    "cm",
		Result:    "1cm",
		CreatedAt: time.Now(),
	}
}

func (s *InMemorySuite) TestListRecent() {
	s.Require().NoError(s.store.Append(s.ctx, record("10mm"), record("20mm")))

	s.Run("newest first", func() {
		got, err := s.store.ListRecent(s.ctx, 10)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal("20mm", got[0].Input)
		s.Equal("10mm", got[1].Input)
	})

	s.Run("limit bounds the result", func() {
		got, err := s.store.ListRecent(s.ctx, 1)
		s.Require().NoError(err)
		s.Len(got, 1)
	})

	s.Run("zero limit", func() {
		got, err := s.store.ListRecent(s.ctx, 0)
		s.Require().NoError(err)
		s.Empty(got)
	})
}

func (s *InMemorySuite) TestCapacityDropsOldest() {
	for _, in := range []string{"1mm", "2mm", "3mm", "4mm"} {
		s.Require().NoError(s.store.Append(s.ctx, record(in)))
	}

	got, err := s.store.ListRecent(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("4mm", got[0].Input)
	s.Equal("2mm", got[2].Input)
}

func (s *InMemorySuite) TestDefaultCapacity() {
	s.Equal(DefaultCapacity, NewInMemory(0).capacity)
}
