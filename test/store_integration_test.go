package test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/deenbuddy/minaret/internal/db"
	"github.com/deenbuddy/minaret/internal/model"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

// TestStoreIntegration exercises the store layer directly against a
// real database.
func TestStoreIntegration(t *testing.T) {
	requireDB(t)
	store := db.TestStore

	t.Run("User Management", func(t *testing.T) {
		email := uniqueEmail("user")
		userID, err := store.CreateUser(email, "hashedpassword", nil)
		assert.NoError(t, err)
		assert.Greater(t, userID, 0)

		user, err := store.GetUserByEmail(email)
		assert.NoError(t, err)
		assert.Equal(t, email, user.Email)

		name := "Updated Name"
		err = store.UpdateUserProfile(userID, uniqueEmail("renamed"), &name)
		assert.NoError(t, err)
	})

	t.Run("Settings Defaults And Upsert", func(t *testing.T) {
		userID, _ := store.CreateUser(uniqueEmail("settings"), "password", nil)

		// unset settings come back as defaults
		settings, err := store.GetUserSettings(userID)
		assert.NoError(t, err)
		assert.Equal(t, db.DefaultMethod, settings.Method)
		assert.Equal(t, db.DefaultSchool, settings.School)
		assert.Equal(t, db.DefaultHighLatRule, settings.HighLatRule)

		method := "isna"
		lat, lng := 41.8781, -87.6298
		updated, err := store.UpdateUserSettings(userID, &method, nil, nil, &lat, &lng, nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, "isna", updated.Method)
		assert.Equal(t, db.DefaultSchool, updated.School)
		assert.InDelta(t, lat, *updated.Latitude, 1e-9)

		// partial update keeps the earlier values
		school := "hanafi"
		updated, err = store.UpdateUserSettings(userID, nil, &school, nil, nil, nil, nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, "isna", updated.Method)
		assert.Equal(t, "hanafi", updated.School)
	})

	t.Run("Verses And Bookmarks", func(t *testing.T) {
		userID, _ := store.CreateUser(uniqueEmail("bookmark"), "password", nil)

		verseID, err := store.UpsertVerse(model.Verse{
			Surah: 112, Ayah: 1, SurahName: "Al-Ikhlas",
			ArabicText:  "قُلْ هُوَ اللَّهُ أَحَدٌ",
			Translation: "Say, He is Allah, who is One.",
		})
		assert.NoError(t, err)
		assert.Greater(t, verseID, 0)

		// upsert on the same reference keeps the row
		againID, err := store.UpsertVerse(model.Verse{
			Surah: 112, Ayah: 1, SurahName: "Al-Ikhlas",
			ArabicText:  "قُلْ هُوَ اللَّهُ أَحَدٌ",
			Translation: "Say, He is Allah, the One.",
		})
		assert.NoError(t, err)
		assert.Equal(t, verseID, againID)

		verse, err := store.GetVerse(112, 1)
		assert.NoError(t, err)
		assert.Equal(t, "Say, He is Allah, the One.", verse.Translation)

		note := "memorize this"
		bookmarkID, err := store.CreateBookmark(userID, verseID, &note)
		assert.NoError(t, err)

		// the same verse cannot be bookmarked twice
		_, err = store.CreateBookmark(userID, verseID, nil)
		assert.ErrorIs(t, err, db.ErrDuplicateBookmark)

		bookmarks, err := store.ListBookmarks(userID)
		assert.NoError(t, err)
		assert.Len(t, bookmarks, 1)
		assert.Equal(t, verseID, bookmarks[0].VerseID)
		assert.NotNil(t, bookmarks[0].Verse)
		assert.Equal(t, 112, bookmarks[0].Verse.Surah)

		assert.NoError(t, store.DeleteBookmark(userID, bookmarkID))
		bookmarks, _ = store.ListBookmarks(userID)
		assert.Empty(t, bookmarks)
	})

	t.Run("Guide Management", func(t *testing.T) {
		userID, _ := store.CreateUser(uniqueEmail("guide"), "password", nil)

		summary := "How to pray fajr step by step"
		guideID, err := store.CreateGuide("Fajr Guide", "fajr", "shafi", &summary, "beginner", userID)
		assert.NoError(t, err)

		guide, err := store.GetGuideByID(guideID)
		assert.NoError(t, err)
		assert.Equal(t, "Fajr Guide", guide.Title)
		assert.False(t, guide.Published)

		// unpublished guides are hidden from the published-only listing
		published, err := store.ListGuides(true)
		assert.NoError(t, err)
		for _, g := range published {
			assert.NotEqual(t, guideID, g.ID)
		}

		step1, err := store.CreateGuideStep(guideID, "Intention", "Make the intention to pray.", nil)
		assert.NoError(t, err)
		arabic := "اللَّهُ أَكْبَرُ"
		step2, err := store.CreateGuideStep(guideID, "Takbir", "Raise your hands and say the takbir.", &arabic)
		assert.NoError(t, err)

		// steps are appended in order
		guide, _ = store.GetGuideByID(guideID)
		assert.Len(t, guide.Steps, 2)
		assert.Equal(t, 1, guide.Steps[0].Position)
		assert.Equal(t, "Intention", guide.Steps[0].Title)

		// reorder swaps the positions
		assert.NoError(t, store.ReorderGuideSteps(guideID, []int{step2, step1}))
		guide, _ = store.GetGuideByID(guideID)
		assert.Equal(t, "Takbir", guide.Steps[0].Title)
		assert.Equal(t, 1, guide.Steps[0].Position)

		yes := true
		assert.NoError(t, store.UpdateGuide(guideID, nil, nil, nil, nil, nil, &yes))
		guide, _ = store.GetGuideByID(guideID)
		assert.True(t, guide.Published)

		assert.NoError(t, store.DeleteGuide(guideID))
		_, err = store.GetGuideByID(guideID)
		assert.Error(t, err)
	})

	t.Run("Dhikr Sessions", func(t *testing.T) {
		userID, _ := store.CreateUser(uniqueEmail("dhikr"), "password", nil)

		presets, err := store.ListDhikrPresets()
		assert.NoError(t, err)
		if len(presets) == 0 {
			t.Skip("dhikr presets not seeded")
		}
		preset := presets[0]

		session, err := store.CreateDhikrSession(userID, preset.ID, 0, 0)
		assert.NoError(t, err)
		assert.Equal(t, preset.DefaultTarget, session.Target)
		assert.Equal(t, 0, session.Count)
		assert.Nil(t, session.CompletedAt)

		session, err = store.IncrementDhikrSession(userID, session.ID, session.Target)
		assert.NoError(t, err)
		assert.Equal(t, session.Target, session.Count)
		assert.NotNil(t, session.CompletedAt)

		today := time.Now().UTC()
		sessions, err := store.ListDhikrSessions(userID, today)
		assert.NoError(t, err)
		assert.Len(t, sessions, 1)

		summary, err := store.DhikrDailySummary(userID, today)
		assert.NoError(t, err)
		assert.Len(t, summary, 1)
		assert.Equal(t, session.Target, summary[0].Total)

		days, err := store.ListDhikrDays(userID, 10)
		assert.NoError(t, err)
		assert.Len(t, days, 1)

		// Bulk save at the preset default target is already complete.
		done, err := store.CreateDhikrSession(userID, preset.ID, 0, preset.DefaultTarget)
		assert.NoError(t, err)
		assert.Equal(t, preset.DefaultTarget, done.Target)
		assert.Equal(t, preset.DefaultTarget, done.Count)
		assert.NotNil(t, done.CompletedAt)
	})

	t.Run("Board Management", func(t *testing.T) {
		userID, _ := store.CreateUser(uniqueEmail("board"), "password", nil)

		city := "Chicago"
		board, err := store.CreateBoard("Main Hall", &city, 41.8781, -87.6298, -300,
			"isna", "hanafi", 15, userID)
		assert.NoError(t, err)
		assert.Nil(t, board.Serial)
		assert.False(t, board.Paired)

		serial := fmt.Sprintf("SER-%d", time.Now().UnixNano())
		assert.NoError(t, store.PairBoard(board.ID, serial))

		paired, err := store.GetBoardBySerial(serial)
		assert.NoError(t, err)
		assert.True(t, paired.Paired)
		assert.Equal(t, board.ID, paired.ID)

		all, err := store.ListPairedBoards()
		assert.NoError(t, err)
		found := false
		for _, b := range all {
			if b.ID == board.ID {
				found = true
			}
		}
		assert.True(t, found)

		newOffset := 20
		assert.NoError(t, store.UpdateBoard(board.ID, nil, nil, nil, nil, nil, nil, nil, &newOffset))
		updated, _ := store.GetBoardByID(board.ID)
		assert.Equal(t, 20, updated.IqamaOffset)
		assert.Equal(t, "isna", updated.Method)

		assert.NoError(t, store.DeleteBoard(board.ID))
		_, err = store.GetBoardByID(board.ID)
		assert.Error(t, err)
	})
}
