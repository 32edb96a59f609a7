package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventticketing/internal/domain"
)

func TestPriceTable_SeededFromBasePrices(t *testing.T) {
	table := NewPriceTable()
	for _, c := range domain.EventCategories {
		for tt, info := range domain.TicketTypes {
			got, err := table.Price(c, tt)
			require.NoError(t, err)
			assert.Equal(t, info.BasePrice, got, "%s/%s", c, tt)
		}
	}
}

func TestPriceTable_Configure(t *testing.T) {
	table := NewPriceTable()
	require.NoError(t, table.Configure(domain.CategoryConcert, domain.TicketVIP, domain.Dollars(250)))

	got, err := table.Price(domain.CategoryConcert, domain.TicketVIP)
	require.NoError(t, err)
	assert.Equal(t, domain.Dollars(250), got)

	other, err := table.Price(domain.CategoryWorkshop, domain.TicketVIP)
	require.NoError(t, err)
	assert.Equal(t, domain.Dollars(100), other)

	tests := []struct {
		name     string
		category domain.EventCategory
		ticket   domain.TicketType
		price    domain.Money
	}{
		{name: "unknown category", category: "PICNIC", ticket: domain.TicketGeneral, price: 1},
		{name: "unknown ticket type", category: domain.CategoryMeetup, ticket: "GOLD", price: 1},
		{name: "negative price", category: domain.CategoryMeetup, ticket: domain.TicketGeneral, price: -1},
		{name: "priced free ticket", category: domain.CategoryMeetup, ticket: domain.TicketFree, price: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireKind(t, table.Configure(tt.category, tt.ticket, tt.price), domain.ErrInvalidData)
		})
	}
}

func TestPriceTable_SnapshotIsACopy(t *testing.T) {
	table := NewPriceTable()
	snap := table.Snapshot()
	snap[domain.CategoryMeetup][domain.TicketGeneral] = 1

	got, err := table.Price(domain.CategoryMeetup, domain.TicketGeneral)
	require.NoError(t, err)
	assert.Equal(t, domain.Dollars(50), got)
}

func TestPriceTable_ConcurrentAccess(t *testing.T) {
	table := NewPriceTable()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = table.Configure(domain.CategorySports, domain.TicketGeneral, domain.Money(i*100))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = table.Price(domain.CategorySports, domain.TicketGeneral)
			_ = table.Snapshot()
		}()
	}
	wg.Wait()
}
