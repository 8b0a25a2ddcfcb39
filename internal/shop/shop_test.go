package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dinomarathon/internal/config"
	"github.com/udisondev/dinomarathon/internal/data"
	"github.com/udisondev/dinomarathon/internal/model"
)

func newTestShop(t *testing.T, seed uint64) *Shop {
	t.Helper()
	catalog, err := data.DefaultCatalog()
	require.NoError(t, err)
	return New(catalog, seed)
}

func TestOffers_DistinctAndKnown(t *testing.T) {
	s := newTestShop(t, 1)
	catalog, err := data.DefaultCatalog()
	require.NoError(t, err)

	for range 200 {
		offers := s.Offers(3)
		require.Len(t, offers, 3)
		seen := make(map[string]bool)
		for _, id := range offers {
			assert.True(t, catalog.Has(id), id)
			assert.False(t, seen[id], "duplicate offer %q", id)
			seen[id] = true
		}
	}
}

func TestOffers_CappedByCatalog(t *testing.T) {
	s := newTestShop(t, 2)
	catalog, err := data.DefaultCatalog()
	require.NoError(t, err)

	offers := s.Offers(1000)
	assert.ElementsMatch(t, catalog.IDs(), offers)
}

func TestOffers_Deterministic(t *testing.T) {
	a, b := newTestShop(t, 77), newTestShop(t, 77)
	for range 20 {
		assert.Equal(t, a.Offers(3), b.Offers(3))
	}
}

func TestOffers_RarityWeighting(t *testing.T) {
	s := newTestShop(t, 3)
	catalog, err := data.DefaultCatalog()
	require.NoError(t, err)

	counts := make(map[data.Rarity]int)
	for range 5000 {
		counts[catalog.Rarity(s.Offers(1)[0])]++
	}
	// Per item, a common is ten times as likely as a rare.
	commons := counts[data.RarityCommon]
	rares := counts[data.RarityRare]
	assert.Greater(t, commons, rares*3)
}

func TestBuyItem(t *testing.T) {
	s := newTestShop(t, 4)
	p := model.NewProgression(config.DefaultCampaign())
	p.Money = 4

	require.NoError(t, s.BuyItem(p, "Gold"))
	assert.Equal(t, 1, p.Money)
	assert.Equal(t, []string{"Gold"}, p.Roster)

	err := s.BuyItem(p, "Silver")
	assert.ErrorIs(t, err, model.ErrNotEnoughMoney)
	assert.Equal(t, 1, p.Money)
	assert.Len(t, p.Roster, 1)

	assert.Error(t, s.BuyItem(p, "Excalibur"))
}

func TestBuyItem_SlotsFullChargesNothing(t *testing.T) {
	s := newTestShop(t, 5)
	p := model.NewProgression(config.DefaultCampaign())
	p.Roster = []string{"Coin", "Bit", "Copper", "Silver", "Gold"}
	p.Money = 10

	err := s.BuyItem(p, "Ginger")
	assert.ErrorIs(t, err, model.ErrSlotsFull)
	assert.Equal(t, 10, p.Money)
}

func TestBuyConsumable(t *testing.T) {
	s := newTestShop(t, 6)
	p := model.NewProgression(config.DefaultCampaign())
	p.Money = 3

	require.NoError(t, s.BuyConsumable(p, "Orange"))
	assert.Equal(t, 1, p.Money)
	assert.Equal(t, "Orange", p.Consumables[len(p.Consumables)-1])

	assert.ErrorIs(t, s.BuyConsumable(p, "Beer"), model.ErrNotEnoughMoney)
	assert.Error(t, s.BuyConsumable(p, "Pasta"))
}

func TestPickStarter(t *testing.T) {
	s := newTestShop(t, 7)
	p := model.NewProgression(config.DefaultCampaign())

	require.NoError(t, s.PickStarter(p, "Ruby_Amulet"))
	assert.Equal(t, []string{"Ruby_Amulet"}, p.Roster)
	assert.Zero(t, p.Money)
	assert.Error(t, s.PickStarter(p, "Nope"))
}
