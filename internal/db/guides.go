package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/model"
)

// inserts a guide, returns the new ID.
func CreateGuide(title, prayer, school string, summary *string, difficulty string, createdBy int) (int, error) {
	query := `
	INSERT INTO guides (title, prayer, school, summary, difficulty, published, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, false, $6, now(), now())
	RETURNING id;
	`
	var id int
	err := DB.QueryRow(query, title, prayer, school, summary, difficulty, createdBy).Scan(&id)
	if err != nil {
		log.Error().Err(err).Msg("failed to create guide")
		return 0, err
	}
	return id, nil
}

// fetches a guide with its steps in position order.
func GetGuideByID(id int) (*model.Guide, error) {
	var g model.Guide
	query := `
	SELECT id, title, prayer, school, summary, difficulty, published, created_at, updated_at, created_by
	FROM guides
	WHERE id = $1;
	`
	if err := DB.Get(&g, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("guide_id", id).Msg("failed to get guide")
		return nil, err
	}

	steps, err := ListGuideSteps(id)
	if err != nil {
		return nil, err
	}
	g.Steps = steps
	return &g, nil
}

// lists guides, optionally restricted to published ones.
func ListGuides(publishedOnly bool) ([]model.Guide, error) {
	var out []model.Guide
	query := `
	SELECT id, title, prayer, school, summary, difficulty, published, created_at, updated_at, created_by
	FROM guides
	WHERE ($1 = false OR published = true)
	ORDER BY prayer, title;
	`
	if err := DB.Select(&out, query, publishedOnly); err != nil {
		log.Error().Err(err).Msg("failed to list guides")
		return nil, err
	}
	return out, nil
}

// patches a guide; nil fields keep their current value.
func UpdateGuide(id int, title, prayer, school, summary, difficulty *string, published *bool) error {
	query := `
	UPDATE guides
	SET title      = COALESCE($2, title),
	    prayer     = COALESCE($3, prayer),
	    school     = COALESCE($4, school),
	    summary    = COALESCE($5, summary),
	    difficulty = COALESCE($6, difficulty),
	    published  = COALESCE($7, published),
	    updated_at = now()
	WHERE id = $1;
	`
	res, err := DB.Exec(query, id, title, prayer, school, summary, difficulty, published)
	if err != nil {
		log.Error().Err(err).Int("guide_id", id).Msg("failed to update guide")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// deletes a guide; steps cascade.
func DeleteGuide(id int) error {
	res, err := DB.Exec(`DELETE FROM guides WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("guide_id", id).Msg("failed to delete guide")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// lists a guide's steps in position order.
func ListGuideSteps(guideID int) ([]model.GuideStep, error) {
	var out []model.GuideStep
	query := `
	SELECT id, guide_id, position, title, body, arabic, media_url, created_at
	FROM guide_steps
	WHERE guide_id = $1
	ORDER BY position;
	`
	if err := DB.Select(&out, query, guideID); err != nil {
		log.Error().Err(err).Int("guide_id", guideID).Msg("failed to list guide steps")
		return nil, err
	}
	return out, nil
}

// appends a step at the end of the guide.
func CreateGuideStep(guideID int, title, body string, arabic *string) (int, error) {
	query := `
	INSERT INTO guide_steps (guide_id, position, title, body, arabic, created_at)
	VALUES ($1, COALESCE((SELECT MAX(position) FROM guide_steps WHERE guide_id = $1), 0) + 1, $2, $3, $4, now())
	RETURNING id;
	`
	var id int
	err := DB.QueryRow(query, guideID, title, body, arabic).Scan(&id)
	if err != nil {
		log.Error().Err(err).Int("guide_id", guideID).Msg("failed to create guide step")
		return 0, err
	}
	return id, nil
}

// fetches one step.
func GetGuideStep(stepID int) (*model.GuideStep, error) {
	var s model.GuideStep
	query := `
	SELECT id, guide_id, position, title, body, arabic, media_url, created_at
	FROM guide_steps
	WHERE id = $1;
	`
	if err := DB.Get(&s, query, stepID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("step_id", stepID).Msg("failed to get guide step")
		return nil, err
	}
	return &s, nil
}

// patches a step's text fields.
func UpdateGuideStep(stepID int, title, body, arabic *string) error {
	query := `
	UPDATE guide_steps
	SET title  = COALESCE($2, title),
	    body   = COALESCE($3, body),
	    arabic = COALESCE($4, arabic)
	WHERE id = $1;
	`
	res, err := DB.Exec(query, stepID, title, body, arabic)
	if err != nil {
		log.Error().Err(err).Int("step_id", stepID).Msg("failed to update guide step")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// stores the uploaded media URL on a step.
func SetGuideStepMedia(stepID int, mediaURL string) error {
	res, err := DB.Exec(`UPDATE guide_steps SET media_url = $2 WHERE id = $1;`, stepID, mediaURL)
	if err != nil {
		log.Error().Err(err).Int("step_id", stepID).Msg("failed to set guide step media")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// removes a step.
func DeleteGuideStep(stepID int) error {
	res, err := DB.Exec(`DELETE FROM guide_steps WHERE id = $1;`, stepID)
	if err != nil {
		log.Error().Err(err).Int("step_id", stepID).Msg("failed to delete guide step")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// renumbers a guide's steps to match the given ID order. Runs in one
// transaction: positions are first shifted past the old range so the
// unique (guide_id, position) index never collides mid-update.
func ReorderGuideSteps(guideID int, stepIDs []int) error {
	tx, err := DB.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	count := len(stepIDs)
	if _, err = tx.Exec(`
	UPDATE guide_steps
	   SET position = position + $1
	 WHERE guide_id = $2;
	`, count, guideID); err != nil {
		return err
	}

	for idx, stepID := range stepIDs {
		var res sql.Result
		res, err = tx.Exec(`
		UPDATE guide_steps
		   SET position = $1
		 WHERE id = $2
		   AND guide_id = $3;
		`, idx+1, stepID, guideID)
		if err != nil {
			return err
		}
		var rows int64
		rows, err = res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			err = errors.New("step does not belong to guide")
			return err
		}
	}
	return nil
}
