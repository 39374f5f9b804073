// Package memory — хранилище в памяти процесса. Реализует репозитории всех фич
// и используется при STORAGE_DRIVER=memory и в тестах.
// Все данные защищены одним мьютексом, поэтому смена статуса предложения
// с публикацией локации и начислением баллов атомарна так же, как транзакция в PostgreSQL.
package memory

import (
	"sync"
	"time"

	"serotonyl.ru/dogspots/internal/features/admin"
	"serotonyl.ru/dogspots/internal/features/favorites"
	"serotonyl.ru/dogspots/internal/features/locations"
	"serotonyl.ru/dogspots/internal/features/reviews"
	"serotonyl.ru/dogspots/internal/features/suggestions"
	"serotonyl.ru/dogspots/internal/features/users"
)

// Store — общее хранилище всех сущностей.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	seq map[string]int64 // Счётчики id по таблицам

	locations    map[int64]*locations.Location
	suggestions  map[int64]*suggestions.Suggestion
	users        map[int64]*users.User
	transactions []*users.PointTransaction
	favorites    []*favorites.Favorite
	reviews      map[int64]*reviews.Review
	sessions     map[string]*admin.Session
	attempts     []*admin.LoginAttempt
}

// New создаёт пустое хранилище.
func New() *Store {
	return &Store{
		now:         time.Now,
		seq:         make(map[string]int64),
		locations:   make(map[int64]*locations.Location),
		suggestions: make(map[int64]*suggestions.Suggestion),
		users:       make(map[int64]*users.User),
		reviews:     make(map[int64]*reviews.Review),
		sessions:    make(map[string]*admin.Session),
	}
}

// nextID выдаёт новый уникальный id. Вызывать под s.mu.
func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// Locations возвращает репозиторий локаций.
func (s *Store) Locations() *LocationRepo { return &LocationRepo{s} }

// Users возвращает репозиторий пользователей.
func (s *Store) Users() *UserRepo { return &UserRepo{s} }

// Suggestions возвращает репозиторий предложений.
func (s *Store) Suggestions() *SuggestionRepo { return &SuggestionRepo{s} }

// Favorites возвращает репозиторий избранного.
func (s *Store) Favorites() *FavoriteRepo { return &FavoriteRepo{s} }

// Reviews возвращает репозиторий отзывов.
func (s *Store) Reviews() *ReviewRepo { return &ReviewRepo{s} }

// Admin возвращает репозиторий сессий админов.
func (s *Store) Admin() *AdminRepo { return &AdminRepo{s} }

var (
	_ locations.Repository   = (*LocationRepo)(nil)
	_ users.Repository       = (*UserRepo)(nil)
	_ suggestions.Repository = (*SuggestionRepo)(nil)
	_ favorites.Repository   = (*FavoriteRepo)(nil)
	_ reviews.Repository     = (*ReviewRepo)(nil)
	_ admin.Repository       = (*AdminRepo)(nil)
)

func ptr[T any](v T) *T { return &v }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
