package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/model"
)

const boardColumns = `
	id, serial, name, city, latitude, longitude, tz_offset_min,
	method, school, iqama_offset, paired, created_at, created_by, updated_at
`

// inserts a board, unpaired; the device serial binds at pairing time.
func CreateBoard(name string, city *string, lat, lng float64, tzOffsetMin int,
	method, school string, iqamaOffset, createdBy int) (*model.Board, error) {
	query := `
	INSERT INTO boards (name, city, latitude, longitude, tz_offset_min,
	                    method, school, iqama_offset, paired, created_at, created_by, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, now(), $9, now())
	RETURNING id;
	`
	var id int
	err := DB.QueryRow(query, name, city, lat, lng, tzOffsetMin,
		method, school, iqamaOffset, createdBy).Scan(&id)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("failed to create board")
		return nil, err
	}
	return GetBoardByID(id)
}

// fetches a board by ID.
func GetBoardByID(id int) (*model.Board, error) {
	var b model.Board
	err := DB.Get(&b, `SELECT `+boardColumns+` FROM boards WHERE id = $1;`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("board_id", id).Msg("failed to get board")
		return nil, err
	}
	return &b, nil
}

// fetches a board by device serial.
func GetBoardBySerial(serial string) (*model.Board, error) {
	var b model.Board
	err := DB.Get(&b, `SELECT `+boardColumns+` FROM boards WHERE serial = $1;`, serial)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Str("serial", serial).Msg("failed to get board by serial")
		return nil, err
	}
	return &b, nil
}

// lists every board.
func ListBoards() ([]model.Board, error) {
	var out []model.Board
	if err := DB.Select(&out, `SELECT `+boardColumns+` FROM boards ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("failed to list boards")
		return nil, err
	}
	return out, nil
}

// lists boards a device has claimed; these drive the nightly precompute.
func ListPairedBoards() ([]model.Board, error) {
	var out []model.Board
	if err := DB.Select(&out, `SELECT `+boardColumns+` FROM boards WHERE paired = true ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("failed to list paired boards")
		return nil, err
	}
	return out, nil
}

// patches a board's location and prayer configuration.
func UpdateBoard(id int, name, city *string, lat, lng *float64, tzOffsetMin *int,
	method, school *string, iqamaOffset *int) error {
	query := `
	UPDATE boards
	SET name          = COALESCE($2, name),
	    city          = COALESCE($3, city),
	    latitude      = COALESCE($4, latitude),
	    longitude     = COALESCE($5, longitude),
	    tz_offset_min = COALESCE($6, tz_offset_min),
	    method        = COALESCE($7, method),
	    school        = COALESCE($8, school),
	    iqama_offset  = COALESCE($9, iqama_offset),
	    updated_at    = now()
	WHERE id = $1;
	`
	res, err := DB.Exec(query, id, name, city, lat, lng, tzOffsetMin, method, school, iqamaOffset)
	if err != nil {
		log.Error().Err(err).Int("board_id", id).Msg("failed to update board")
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

// marks a board paired with the device serial that claimed it.
func PairBoard(id int, serial string) error {
	res, err := DB.Exec(`
	UPDATE boards
	SET serial = $2, paired = true, updated_at = now()
	WHERE id = $1;
	`, id, serial)
	if err != nil {
		log.Error().Err(err).Int("board_id", id).Msg("failed to pair board")
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

// deletes a board.
func DeleteBoard(id int) error {
	res, err := DB.Exec(`DELETE FROM boards WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("board_id", id).Msg("failed to delete board")
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
