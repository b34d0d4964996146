package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

const (
	ItemTypeProduct = "product"
	ItemTypeBooking = "booking"
)

var (
	cartsBucket = []byte("carts")

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// Item is one cart line: either a product purchase intent or a treatment
// booking intent. ID is generated by the store and unique per line;
// ItemID references the catalog record.
type Item struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	ItemID   int64   `json:"itemId"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
	// Booking lines only
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Duration int    `json:"duration,omitempty"` // minutes
}

// cartRecord is the persisted subset: the line items and a touch
// timestamp for stale-cart purging. No UI flags are persisted.
type cartRecord struct {
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store keeps one cart per client session, durably persisted so carts
// survive restarts. Catalog data is never stored here.
type Store struct {
	mu sync.Mutex
	db *bolt.DB
}

func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open cart store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(cartsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init cart store")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) load(cartID string) (cartRecord, error) {
	var rec cartRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(cartsBucket).Get([]byte(cartID))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return rec, errors.Wrapf(err, "load cart %s", cartID)
	}
	return rec, nil
}

func (s *Store) save(cartID string, rec cartRecord) error {
	rec.UpdatedAt = time.Now()
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrapf(err, "encode cart %s", cartID)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cartsBucket).Put([]byte(cartID), data)
	})
	return errors.Wrapf(err, "save cart %s", cartID)
}

// AddToCart appends item to the cart. Product lines with the same ItemID
// are coalesced into a single line with summed quantity; booking lines
// are always distinct, even for the same treatment and slot. The stored
// line is returned.
func (s *Store) AddToCart(cartID string, item Item) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Quantity < 1 {
		item.Quantity = 1
	}

	rec, err := s.load(cartID)
	if err != nil {
		return Item{}, err
	}

	if item.Type == ItemTypeProduct {
		for i := range rec.Items {
			if rec.Items[i].Type == ItemTypeProduct && rec.Items[i].ItemID == item.ItemID {
				rec.Items[i].Quantity += item.Quantity
				if err := s.save(cartID, rec); err != nil {
					return Item{}, err
				}
				return rec.Items[i], nil
			}
		}
	}

	item.ID = uuid.NewString()
	rec.Items = append(rec.Items, item)
	if err := s.save(cartID, rec); err != nil {
		return Item{}, err
	}
	return item, nil
}

// RemoveFromCart removes the line with the given generated id. Removing
// an absent id is a no-op.
func (s *Store) RemoveFromCart(cartID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(cartID, itemID)
}

func (s *Store) removeLocked(cartID, itemID string) error {
	rec, err := s.load(cartID)
	if err != nil {
		return err
	}
	kept := rec.Items[:0]
	for _, it := range rec.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(rec.Items) {
		return nil
	}
	rec.Items = kept
	return s.save(cartID, rec)
}

// UpdateQuantity sets the line's quantity exactly. A quantity of zero or
// less removes the line.
func (s *Store) UpdateQuantity(cartID, itemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(cartID, itemID)
	}
	rec, err := s.load(cartID)
	if err != nil {
		return err
	}
	for i := range rec.Items {
		if rec.Items[i].ID == itemID {
			rec.Items[i].Quantity = quantity
			return s.save(cartID, rec)
		}
	}
	return nil
}

// Items returns the cart lines in insertion order.
func (s *Store) Items(cartID string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(cartID)
	if err != nil {
		return nil, err
	}
	return rec.Items, nil
}

// TotalItems returns the summed quantity across all lines.
func (s *Store) TotalItems(cartID string) (int, error) {
	items, err := s.Items(cartID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total, nil
}

// TotalPrice returns the pre-tax subtotal. Tax and deposits are a
// presentation concern and never computed here.
func (s *Store) TotalPrice(cartID string) (float64, error) {
	items, err := s.Items(cartID)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total, nil
}

// ClearCart empties the cart.
func (s *Store) ClearCart(cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cartsBucket).Delete([]byte(cartID))
	})
	return errors.Wrapf(err, "clear cart %s", cartID)
}

// PurgeStale drops carts untouched for longer than age and returns the
// number removed.
func (s *Store) PurgeStale(age time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-age)
	var stale [][]byte
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(cartsBucket).ForEach(func(k, v []byte) error {
			var rec cartRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				// unreadable record, drop it
				stale = append(stale, append([]byte(nil), k...))
				return nil
			}
			if rec.UpdatedAt.Before(cutoff) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
	})
	if err != nil {
		return 0, errors.Wrap(err, "scan carts")
	}
	if len(stale) == 0 {
		return 0, nil
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(cartsBucket)
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "purge carts")
	}
	return len(stale), nil
}
