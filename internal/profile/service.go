package profile

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"waitlist/internal/constant"
	"waitlist/internal/models"
	"waitlist/internal/storage"
)

// Service stores customer and business profiles. Writes overwrite the whole
// document; profiles have a single owner so there is no version check.
type Service struct {
	store  storage.DocumentStore
	logger *logrus.Logger
}

func NewService(store storage.DocumentStore, logger *logrus.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) GetCustomer(ctx context.Context, uid string) (models.Customer, error) {
	var c models.Customer
	if err := s.get(ctx, constant.CustomersCollection, uid, constant.ErrCustomerNotFound, &c); err != nil {
		return models.Customer{}, err
	}
	c.UID = uid
	return c, nil
}

func (s *Service) PutCustomer(ctx context.Context, c models.Customer) error {
	if err := requireUID(c.UID, "customer.uid"); err != nil {
		return err
	}
	return s.put(ctx, constant.CustomersCollection, c.UID, c)
}

// NewCustomer stores a blank profile for uid. A pushToken of NO_ID means the
// device has no token yet.
func (s *Service) NewCustomer(ctx context.Context, uid, pushToken string) (models.Customer, error) {
	if err := requireUID(uid, "uid"); err != nil {
		return models.Customer{}, err
	}
	if pushToken == "" {
		return models.Customer{}, errors.Wrap(constant.ErrMalformedRequest, "pushToken is required")
	}
	if pushToken == constant.NoPushToken {
		pushToken = ""
	}

	c := models.Customer{
		UID:       uid,
		Favorites: []string{},
		Recents:   []string{},
		PushToken: pushToken,
	}
	if err := s.put(ctx, constant.CustomersCollection, uid, c); err != nil {
		return models.Customer{}, err
	}
	s.logger.WithField("uid", uid).Info("customer created")
	return c, nil
}

func (s *Service) GetBusiness(ctx context.Context, uid string) (models.Business, error) {
	var b models.Business
	if err := s.get(ctx, constant.BusinessesCollection, uid, constant.ErrBusinessNotFound, &b); err != nil {
		return models.Business{}, err
	}
	b.UID = uid
	return b, nil
}

func (s *Service) PutBusiness(ctx context.Context, b models.Business) error {
	if err := requireUID(b.UID, "business.uid"); err != nil {
		return err
	}
	return s.put(ctx, constant.BusinessesCollection, b.UID, b)
}

func (s *Service) get(ctx context.Context, collection, uid string, notFound error, out interface{}) error {
	if err := requireUID(uid, "uid"); err != nil {
		return err
	}

	doc, err := s.store.Get(ctx, collection, uid)
	if errors.Is(err, constant.ErrNotFound) {
		return errors.Wrapf(notFound, "uid %s", uid)
	}
	if err != nil {
		return errors.Wrapf(err, "load %s %s", collection, uid)
	}
	if err := json.Unmarshal(doc.Body, out); err != nil {
		return constant.NewStoreError("decode "+collection, err)
	}
	return nil
}

func (s *Service) put(ctx context.Context, collection, uid string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return constant.NewStoreError("encode "+collection, err)
	}
	if err := s.store.Set(ctx, collection, uid, body); err != nil {
		return errors.Wrapf(err, "store %s %s", collection, uid)
	}
	return nil
}

func requireUID(uid, field string) error {
	if strings.TrimSpace(uid) == "" {
		return errors.Wrapf(constant.ErrMalformedRequest, "%s is required", field)
	}
	return nil
}
