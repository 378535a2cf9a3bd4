package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"shoe-assistant-api/internal/database"
	"shoe-assistant-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// SessionFactory opens one database connection per handler invocation
type SessionFactory struct {
	connector *database.Connector
	logger    *logrus.Logger
}

// NewSessionFactory creates a new session factory
func NewSessionFactory(connector *database.Connector, logger *logrus.Logger) repositories.SessionFactory {
	if logger == nil {
		logger = logrus.New()
	}
	return &SessionFactory{
		connector: connector,
		logger:    logger,
	}
}

// Open connects to the database and returns repositories bound to that connection
func (f *SessionFactory) Open(ctx context.Context) (repositories.Session, error) {
	db, err := f.connector.Connect(ctx)
	if err != nil {
		return nil, repositories.ConnectionError(err)
	}

	return newSession(db, f.logger), nil
}

// Session groups the repositories sharing one connection
type Session struct {
	db        *sql.DB
	customers repositories.CustomerRepository
	contacts  repositories.ContactRepository
	shoes     repositories.ShoeRepository
	orders    repositories.OrderRepository
}

func newSession(db *sql.DB, logger *logrus.Logger) *Session {
	return &Session{
		db:        db,
		customers: NewCustomerRepository(db, logger),
		contacts:  NewContactRepository(db, logger),
		shoes:     NewShoeRepository(db, logger),
		orders:    NewOrderRepository(db, logger),
	}
}

func (s *Session) Customers() repositories.CustomerRepository { return s.customers }
func (s *Session) Contacts() repositories.ContactRepository   { return s.contacts }
func (s *Session) Shoes() repositories.ShoeRepository         { return s.shoes }
func (s *Session) Orders() repositories.OrderRepository       { return s.orders }

// Close releases the connection. Closing twice is an error.
func (s *Session) Close() error {
	if s.db == nil {
		return repositories.ErrSessionClosed
	}

	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}
