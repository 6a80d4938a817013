package contact

import (
	"context"
	"fmt"
	"time"

	"go-campzeo-client/src/application/store"
	domainContact "go-campzeo-client/src/domain/contact"
	domainErrors "go-campzeo-client/src/domain/errors"
	"go-campzeo-client/src/infrastructure/helper"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/repository/backend"

	"go.uber.org/zap"
)

// Export is a downloadable contact list
type Export struct {
	FileName    string
	ContentType string
	Data        []byte
}

type IContactUseCase interface {
	List(ctx context.Context, filter domainContact.ListFilter) ([]domainContact.Contact, error)
	Get(ctx context.Context, id string) (*domainContact.Contact, error)
	Create(ctx context.Context, form *domainContact.Form) (*domainContact.Contact, error)
	Update(ctx context.Context, id string, form *domainContact.Form) (*domainContact.Contact, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context) (*Export, error)
}

type ContactUseCase struct {
	ContactRepository backend.ContactRepositoryInterface
	Validator         helper.Validator
	Logger            *logger.Logger

	list *store.Sequencer[[]domainContact.Contact]
	now  func() time.Time
}

func NewContactUseCase(
	contactRepository backend.ContactRepositoryInterface,
	validator helper.Validator,
	loggerInstance *logger.Logger,
) IContactUseCase {
	return &ContactUseCase{
		ContactRepository: contactRepository,
		Validator:         validator,
		Logger:            loggerInstance,
		list:              store.NewSequencer[[]domainContact.Contact](),
		now:               time.Now,
	}
}

func (u *ContactUseCase) List(ctx context.Context, filter domainContact.ListFilter) ([]domainContact.Contact, error) {
	ticket := u.list.Begin()
	contacts, err := u.ContactRepository.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if !u.list.Resolve(ticket, contacts) {
		u.Logger.Debug("Dropped stale contact list", zap.Uint64("ticket", uint64(ticket)))
		if latest, ok := u.list.Latest(); ok {
			return latest, nil
		}
	}
	return contacts, nil
}

func (u *ContactUseCase) Get(ctx context.Context, id string) (*domainContact.Contact, error) {
	if id == "" {
		return nil, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	return u.ContactRepository.GetByID(ctx, id)
}

func (u *ContactUseCase) Create(ctx context.Context, form *domainContact.Form) (*domainContact.Contact, error) {
	if err := u.Validator.Struct(form); err != nil {
		return nil, err
	}
	created, err := u.ContactRepository.Create(ctx, form)
	if err != nil {
		return nil, err
	}
	u.Logger.Info("Contact created", zap.String("contactID", created.ID))
	return created, nil
}

func (u *ContactUseCase) Update(ctx context.Context, id string, form *domainContact.Form) (*domainContact.Contact, error) {
	if id == "" {
		return nil, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	if err := u.Validator.Struct(form); err != nil {
		return nil, err
	}
	updated, err := u.ContactRepository.Update(ctx, id, form)
	if err != nil {
		return nil, err
	}
	u.Logger.Info("Contact updated", zap.String("contactID", id))
	return updated, nil
}

func (u *ContactUseCase) Delete(ctx context.Context, id string) error {
	if err := u.ContactRepository.Delete(ctx, id); err != nil {
		return err
	}
	u.Logger.Info("Contact deleted", zap.String("contactID", id))
	return nil
}

// Export downloads every contact as CSV, named after the export date
func (u *ContactUseCase) Export(ctx context.Context) (*Export, error) {
	exported, err := u.ContactRepository.Export(ctx)
	if err != nil {
		return nil, err
	}
	u.Logger.Info("Contacts exported", zap.Int("bytes", len(exported.Data)))
	return &Export{
		FileName:    fmt.Sprintf("contacts-%s.csv", u.now().Format("2006-01-02")),
		ContentType: exported.ContentType,
		Data:        exported.Data,
	}, nil
}
