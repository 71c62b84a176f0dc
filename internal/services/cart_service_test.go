package services_test

import (
	"errors"
	"testing"

	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"

	"github.com/stretchr/testify/assert"
)

const testProfile = "user-1"

func newCartFixture() (*services.CartService, *repositories.MemoryRecordStore) {
	store := repositories.NewMemoryRecordStore()
	return services.NewCartService(store), store
}

func TestCartService_AddNewItem(t *testing.T) {
	cart, _ := newCartFixture()

	product := &models.Product{ID: "p1", Name: "Mouse", Price: 30, ImageURL: "http://img/mouse.png"}
	items, err := cart.AddToCart(testProfile, product, 3)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, models.ID("p1"), items[0].ID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, models.Price(30), items[0].Price)

	// Read back through a fresh call, not the returned slice.
	persisted := cart.Items(testProfile)
	assert.Equal(t, items, persisted)
}

func TestCartService_AddAccumulatesQuantity(t *testing.T) {
	cart, _ := newCartFixture()
	product := &models.Product{ID: "p1", Name: "Mouse", Price: 30}

	_, err := cart.AddToCart(testProfile, product, 2)
	assert.NoError(t, err)
	items, err := cart.AddToCart(testProfile, product, 5)
	assert.NoError(t, err)

	assert.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestCartService_AddDefaultsToOne(t *testing.T) {
	cart, _ := newCartFixture()

	items, err := cart.AddToCart(testProfile, &models.Product{ID: "p1", Name: "Mouse", Price: 30}, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCartService_RemoveUndoesAdd(t *testing.T) {
	cart, _ := newCartFixture()

	_, err := cart.AddToCart(testProfile, &models.Product{ID: "p1", Name: "Mouse", Price: 30}, 2)
	assert.NoError(t, err)
	before := cart.Items(testProfile)

	_, err = cart.AddToCart(testProfile, &models.Product{ID: "p2", Name: "Keyboard", Price: 80}, 1)
	assert.NoError(t, err)
	after, err := cart.RemoveFromCart(testProfile, "p2")
	assert.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestCartService_RemoveAbsentIsNoop(t *testing.T) {
	cart, _ := newCartFixture()

	_, err := cart.AddToCart(testProfile, &models.Product{ID: "p1", Name: "Mouse", Price: 30}, 1)
	assert.NoError(t, err)

	items, err := cart.RemoveFromCart(testProfile, "nope")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	cart, _ := newCartFixture()
	_, err := cart.AddToCart(testProfile, &models.Product{ID: "p1", Name: "Mouse", Price: 30}, 1)
	assert.NoError(t, err)

	// Rounds to the nearest integer.
	items, err := cart.UpdateQuantity(testProfile, "p1", 2.6)
	assert.NoError(t, err)
	assert.Equal(t, 3, items[0].Quantity)

	// Clamps to a minimum of one.
	items, err = cart.UpdateQuantity(testProfile, "p1", 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, items[0].Quantity)

	items, err = cart.UpdateQuantity(testProfile, "p1", -4)
	assert.NoError(t, err)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCartService_UpdateQuantityAbsentIsNoop(t *testing.T) {
	cart, _ := newCartFixture()
	_, err := cart.AddToCart(testProfile, &models.Product{ID: "p1", Name: "Mouse", Price: 30}, 2)
	assert.NoError(t, err)

	items, err := cart.UpdateQuantity(testProfile, "ghost", 5)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartService_Totals(t *testing.T) {
	cart, _ := newCartFixture()

	_, err := cart.AddToCart(testProfile, &models.Product{ID: "p1", Name: "Mouse", Price: 30}, 2)
	assert.NoError(t, err)
	_, err = cart.AddToCart(testProfile, &models.Product{ID: "p2", Name: "Keyboard", Price: 80}, 1)
	assert.NoError(t, err)

	totals := cart.Totals(testProfile)
	assert.Equal(t, 140.0, totals.Subtotal)
	assert.Equal(t, 3, totals.TotalItems)
}

func TestCartService_ClearCart(t *testing.T) {
	cart, _ := newCartFixture()
	_, err := cart.AddToCart(testProfile, &models.Product{ID: "p1", Name: "Mouse", Price: 30}, 2)
	assert.NoError(t, err)

	assert.NoError(t, cart.ClearCart(testProfile))
	assert.Empty(t, cart.Items(testProfile))
}

func TestCartService_ProfilesAreIsolated(t *testing.T) {
	cart, _ := newCartFixture()

	_, err := cart.AddToCart("alice", &models.Product{ID: "p1", Name: "Mouse", Price: 30}, 1)
	assert.NoError(t, err)

	assert.Empty(t, cart.Items("bob"))
	assert.Len(t, cart.Items("alice"), 1)
}

func TestCartService_CorruptedDataReadsAsEmpty(t *testing.T) {
	cart, store := newCartFixture()

	assert.NoError(t, store.Write(testProfile, "cart", []byte("{not json")))
	assert.Empty(t, cart.Items(testProfile))

	// A write after corruption starts from the empty collection.
	items, err := cart.AddToCart(testProfile, &models.Product{ID: "p1", Name: "Mouse", Price: 30}, 1)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCartService_WriteFailurePropagates(t *testing.T) {
	cart, store := newCartFixture()
	store.WriteErr = errors.New("quota exceeded")

	_, err := cart.AddToCart(testProfile, &models.Product{ID: "p1", Name: "Mouse", Price: 30}, 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	// The failed mutation is not reflected.
	store.WriteErr = nil
	assert.Empty(t, cart.Items(testProfile))
}
