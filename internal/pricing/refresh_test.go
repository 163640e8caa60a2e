package pricing

import (
	"testing"

	"brickfolio/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memdb opens an in-memory database with the catalog schema
func memdb(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Set{}, &domain.Minifigure{}))
	return db
}

func intPtr(v int) *int { return &v }

func TestRefreshMinifigurePrices(t *testing.T) {
	db := memdb(t)

	// One figure with no year but a recoverable id, one fully specified
	figs := []domain.Minifigure{
		{MinifigID: "sw2014a", Name: "Clone Trooper", Appearances: intPtr(1)},
		{MinifigID: "chewie", Name: "Chewbacca", Year: intPtr(2020), Appearances: intPtr(1)},
	}
	require.NoError(t, db.Create(&figs).Error)

	require.NoError(t, RefreshMinifigurePrices(db, midJitter, 2025))

	var clone, chewie domain.Minifigure
	require.NoError(t, db.Where("minifig_id = ?", "sw2014a").First(&clone).Error)
	require.NoError(t, db.Where("minifig_id = ?", "chewie").First(&chewie).Error)

	// The missing year was recovered from the external id and persisted
	require.NotNil(t, clone.Year)
	assert.Equal(t, 2014, *clone.Year)

	// Recovered year drives the age factor: 15 * 1.8 * 1.6 at mid jitter
	require.NotNil(t, clone.AvgPriceUSD)
	assert.Equal(t, 43.2, *clone.AvgPriceUSD)

	// Stored year untouched; 15 * 1.8 * 1.3 at mid jitter
	assert.Equal(t, 2020, *chewie.Year)
	require.NotNil(t, chewie.AvgPriceUSD)
	assert.Equal(t, 35.1, *chewie.AvgPriceUSD)
}

func TestRefreshMinifigurePricesStayInBounds(t *testing.T) {
	db := memdb(t)

	// A spread of rarity/age combinations, including unpriceable ids
	figs := []domain.Minifigure{
		{MinifigID: "sw0001", Name: "A", Appearances: intPtr(1)},
		{MinifigID: "sw2001b", Name: "B", Appearances: intPtr(40)},
		{MinifigID: "sw2024x", Name: "C"},
		{MinifigID: "droid", Name: "D", Year: intPtr(1999), Appearances: intPtr(3)},
	}
	require.NoError(t, db.Create(&figs).Error)

	require.NoError(t, RefreshMinifigurePrices(db, DefaultRand(), 2025))

	var refreshed []domain.Minifigure
	require.NoError(t, db.Find(&refreshed).Error)
	for _, fig := range refreshed {
		require.NotNil(t, fig.AvgPriceUSD, "every row gets a price: %s", fig.MinifigID)
		assert.GreaterOrEqual(t, *fig.AvgPriceUSD, MinPrice)
		assert.LessOrEqual(t, *fig.AvgPriceUSD, MaxPrice)
	}
}

func TestRefreshFictitiousPrices(t *testing.T) {
	db := memdb(t)

	sets := []domain.Set{
		{SetID: "75192-1", Name: "Millennium Falcon", Year: intPtr(2010), Pieces: intPtr(500), Retired: true},
		{SetID: "75300-1", Name: "TIE Fighter", Year: intPtr(2021), Pieces: intPtr(432)},
	}
	require.NoError(t, db.Create(&sets).Error)
	fig := domain.Minifigure{MinifigID: "sw2010a", Name: "Han Solo", Year: intPtr(2010)}
	require.NoError(t, db.Create(&fig).Error)

	require.NoError(t, RefreshFictitiousPrices(db, midJitter))

	var falcon, tie domain.Set
	require.NoError(t, db.Where("set_id = ?", "75192-1").First(&falcon).Error)
	require.NoError(t, db.Where("set_id = ?", "75300-1").First(&tie).Error)

	// 500 pieces * 0.1 with retirement and pre-2015 markups
	require.NotNil(t, falcon.PriceUSD)
	assert.Equal(t, 84.0, *falcon.PriceUSD)

	// 432 pieces * 0.1, no markups
	require.NotNil(t, tie.PriceUSD)
	assert.InDelta(t, 43.2, *tie.PriceUSD, 0.001)

	// Minifigure draw at mid jitter with the pre-2015 markup
	var han domain.Minifigure
	require.NoError(t, db.Where("minifig_id = ?", "sw2010a").First(&han).Error)
	require.NotNil(t, han.AvgPriceUSD)
	assert.Equal(t, 18.0, *han.AvgPriceUSD)
}
