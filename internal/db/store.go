// exposes a Store interface that is passed to API controllers
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/deenbuddy/minaret/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// settings functions
	GetUserSettings(userID int) (*model.UserSettings, error)
	UpdateUserSettings(userID int, method, school, highLatRule *string,
		lat, lng *float64, city *string, tzOffsetMin *int) (*model.UserSettings, error)

	// verse functions
	UpsertVerse(v model.Verse) (int, error)
	ListAllVerses() ([]model.Verse, error)
	ListVersesBySurah(surah int) ([]model.Verse, error)
	GetVerse(surah, ayah int) (*model.Verse, error)
	GetVerseByID(id int) (*model.Verse, error)

	// bookmark functions
	CreateBookmark(userID, verseID int, note *string) (int, error)
	ListBookmarks(userID int) ([]model.Bookmark, error)
	DeleteBookmark(userID, bookmarkID int) error

	// guide functions
	CreateGuide(title, prayer, school string, summary *string, difficulty string, createdBy int) (int, error)
	GetGuideByID(id int) (*model.Guide, error)
	ListGuides(publishedOnly bool) ([]model.Guide, error)
	UpdateGuide(id int, title, prayer, school, summary, difficulty *string, published *bool) error
	DeleteGuide(id int) error
	CreateGuideStep(guideID int, title, body string, arabic *string) (int, error)
	GetGuideStep(stepID int) (*model.GuideStep, error)
	UpdateGuideStep(stepID int, title, body, arabic *string) error
	SetGuideStepMedia(stepID int, mediaURL string) error
	DeleteGuideStep(stepID int) error
	ReorderGuideSteps(guideID int, stepIDs []int) error

	// dhikr functions
	ListDhikrPresets() ([]model.DhikrPreset, error)
	GetDhikrPreset(id int) (*model.DhikrPreset, error)
	CreateDhikrSession(userID, presetID, target, count int) (*model.DhikrSession, error)
	GetDhikrSession(userID, sessionID int) (*model.DhikrSession, error)
	IncrementDhikrSession(userID, sessionID, delta int) (*model.DhikrSession, error)
	ListDhikrSessions(userID int, day time.Time) ([]model.DhikrSession, error)
	DhikrDailySummary(userID int, day time.Time) ([]model.PresetTally, error)
	ListDhikrDays(userID, limit int) ([]time.Time, error)

	// board functions
	CreateBoard(name string, city *string, lat, lng float64, tzOffsetMin int,
		method, school string, iqamaOffset, createdBy int) (*model.Board, error)
	GetBoardByID(id int) (*model.Board, error)
	GetBoardBySerial(serial string) (*model.Board, error)
	ListBoards() ([]model.Board, error)
	ListPairedBoards() ([]model.Board, error)
	UpdateBoard(id int, name, city *string, lat, lng *float64, tzOffsetMin *int,
		method, school *string, iqamaOffset *int) error
	PairBoard(id int, serial string) error
	DeleteBoard(id int) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(database *sqlx.DB) Store {
	if database == nil {
		database = DB
	}
	return &pgStore{db: database}
}

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	return CreateUser(email, hashedPassword, name)
}
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) { return GetUserByEmail(email) }
func (s *pgStore) GetUserByID(id int) (*model.User, error)          { return GetUserByID(id) }
func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	return UpdateUserProfile(id, email, name)
}

func (s *pgStore) GetUserSettings(userID int) (*model.UserSettings, error) {
	return GetUserSettings(userID)
}
func (s *pgStore) UpdateUserSettings(userID int, method, school, highLatRule *string,
	lat, lng *float64, city *string, tzOffsetMin *int) (*model.UserSettings, error) {
	return UpdateUserSettings(userID, method, school, highLatRule, lat, lng, city, tzOffsetMin)
}

func (s *pgStore) UpsertVerse(v model.Verse) (int, error)         { return UpsertVerse(v) }
func (s *pgStore) ListAllVerses() ([]model.Verse, error)          { return ListAllVerses() }
func (s *pgStore) ListVersesBySurah(n int) ([]model.Verse, error) { return ListVersesBySurah(n) }
func (s *pgStore) GetVerse(surah, ayah int) (*model.Verse, error) { return GetVerse(surah, ayah) }
func (s *pgStore) GetVerseByID(id int) (*model.Verse, error)      { return GetVerseByID(id) }

func (s *pgStore) CreateBookmark(userID, verseID int, note *string) (int, error) {
	return CreateBookmark(userID, verseID, note)
}
func (s *pgStore) ListBookmarks(userID int) ([]model.Bookmark, error) { return ListBookmarks(userID) }
func (s *pgStore) DeleteBookmark(userID, bookmarkID int) error {
	return DeleteBookmark(userID, bookmarkID)
}

func (s *pgStore) CreateGuide(title, prayer, school string, summary *string, difficulty string, createdBy int) (int, error) {
	return CreateGuide(title, prayer, school, summary, difficulty, createdBy)
}
func (s *pgStore) GetGuideByID(id int) (*model.Guide, error)        { return GetGuideByID(id) }
func (s *pgStore) ListGuides(published bool) ([]model.Guide, error) { return ListGuides(published) }
func (s *pgStore) UpdateGuide(id int, title, prayer, school, summary, difficulty *string, published *bool) error {
	return UpdateGuide(id, title, prayer, school, summary, difficulty, published)
}
func (s *pgStore) DeleteGuide(id int) error { return DeleteGuide(id) }
func (s *pgStore) CreateGuideStep(guideID int, title, body string, arabic *string) (int, error) {
	return CreateGuideStep(guideID, title, body, arabic)
}
func (s *pgStore) GetGuideStep(stepID int) (*model.GuideStep, error) { return GetGuideStep(stepID) }
func (s *pgStore) UpdateGuideStep(stepID int, title, body, arabic *string) error {
	return UpdateGuideStep(stepID, title, body, arabic)
}
func (s *pgStore) SetGuideStepMedia(stepID int, mediaURL string) error {
	return SetGuideStepMedia(stepID, mediaURL)
}
func (s *pgStore) DeleteGuideStep(stepID int) error { return DeleteGuideStep(stepID) }
func (s *pgStore) ReorderGuideSteps(guideID int, stepIDs []int) error {
	return ReorderGuideSteps(guideID, stepIDs)
}

func (s *pgStore) ListDhikrPresets() ([]model.DhikrPreset, error)    { return ListDhikrPresets() }
func (s *pgStore) GetDhikrPreset(id int) (*model.DhikrPreset, error) { return GetDhikrPreset(id) }
func (s *pgStore) CreateDhikrSession(userID, presetID, target, count int) (*model.DhikrSession, error) {
	return CreateDhikrSession(userID, presetID, target, count)
}
func (s *pgStore) GetDhikrSession(userID, sessionID int) (*model.DhikrSession, error) {
	return GetDhikrSession(userID, sessionID)
}
func (s *pgStore) IncrementDhikrSession(userID, sessionID, delta int) (*model.DhikrSession, error) {
	return IncrementDhikrSession(userID, sessionID, delta)
}
func (s *pgStore) ListDhikrSessions(userID int, day time.Time) ([]model.DhikrSession, error) {
	return ListDhikrSessions(userID, day)
}
func (s *pgStore) DhikrDailySummary(userID int, day time.Time) ([]model.PresetTally, error) {
	return DhikrDailySummary(userID, day)
}
func (s *pgStore) ListDhikrDays(userID, limit int) ([]time.Time, error) {
	return ListDhikrDays(userID, limit)
}

func (s *pgStore) CreateBoard(name string, city *string, lat, lng float64, tzOffsetMin int,
	method, school string, iqamaOffset, createdBy int) (*model.Board, error) {
	return CreateBoard(name, city, lat, lng, tzOffsetMin, method, school, iqamaOffset, createdBy)
}
func (s *pgStore) GetBoardByID(id int) (*model.Board, error) { return GetBoardByID(id) }
func (s *pgStore) GetBoardBySerial(serial string) (*model.Board, error) {
	return GetBoardBySerial(serial)
}
func (s *pgStore) ListBoards() ([]model.Board, error)       { return ListBoards() }
func (s *pgStore) ListPairedBoards() ([]model.Board, error) { return ListPairedBoards() }
func (s *pgStore) UpdateBoard(id int, name, city *string, lat, lng *float64, tzOffsetMin *int,
	method, school *string, iqamaOffset *int) error {
	return UpdateBoard(id, name, city, lat, lng, tzOffsetMin, method, school, iqamaOffset)
}
func (s *pgStore) PairBoard(id int, serial string) error { return PairBoard(id, serial) }
func (s *pgStore) DeleteBoard(id int) error              { return DeleteBoard(id) }
