package duel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	POKEMON_FILE = "pokemon-data.csv"
	MOVE_FILE    = "move-data.csv"
)

// Pokemon file columns, located by header name
const (
	COL_NAME       = "Name"
	COL_TYPES      = "Types"
	COL_ABILITIES  = "Abilities"
	COL_TIER       = "Tier"
	COL_HP         = "HP"
	COL_ATTACK     = "Attack"
	COL_DEFENSE    = "Defense"
	COL_SPATTACK   = "Special Attack"
	COL_SPDEF      = "Special Defense"
	COL_SPEED      = "Speed"
	COL_EVOLUTIONS = "Next Evolution(s)"
	COL_MOVES      = "Moves"
)

// Move file columns
const (
	COL_MOVE_NAME     = "Name"
	COL_MOVE_TYPE     = "Types"
	COL_MOVE_CATEGORY = "Category"
	COL_MOVE_PP       = "PP"
	COL_MOVE_POWER    = "Power"
	COL_MOVE_ACCURACY = "Accuracy"
)

// Marks an empty numeric column in the move file
const noneValue = "None"

var (
	pokemonColumns = []string{COL_NAME, COL_TYPES, COL_ABILITIES, COL_TIER, COL_HP, COL_ATTACK, COL_DEFENSE, COL_SPATTACK, COL_SPDEF, COL_SPEED, COL_EVOLUTIONS, COL_MOVES}
	moveColumns    = []string{COL_MOVE_NAME, COL_MOVE_TYPE, COL_MOVE_CATEGORY, COL_MOVE_PP, COL_MOVE_POWER, COL_MOVE_ACCURACY}
)

var loaderLogger = func() logr.Logger {
	return internalLogger.WithName("loader")
}

// LoadPokemon reads the semicolon separated pokemon file.
// List columns (types, abilities, evolutions, moves) are written as ['A', 'B'].
// Every stat must be a positive integer and every pokemon needs at least one move.
func LoadPokemon(source string, r io.Reader) ([]PokemonRecord, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = ';'
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err != nil {
		return nil, &DataError{Source: source, Record: "header", Err: err}
	}

	columns, err := indexColumns(source, header, pokemonColumns)
	if err != nil {
		return nil, err
	}

	titleCaser := cases.Title(language.English)
	seen := make(map[string]bool)
	pokemonList := make([]PokemonRecord, 0, 256)

	loaderLogger().Info("Loading pokemon data", "source", source)

	for rowNumber := 2; ; rowNumber++ {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DataError{Source: source, Record: fmt.Sprintf("row %d", rowNumber), Err: err}
		}

		// skip blank lines that only contain separators
		if lo.EveryBy(row, func(field string) bool { return strings.TrimSpace(field) == "" }) {
			continue
		}

		if len(row) < len(header) {
			return nil, &DataError{Source: source, Record: fmt.Sprintf("row %d", rowNumber), Err: fmt.Errorf("expected %d fields, got %d", len(header), len(row))}
		}

		field := func(column string) string {
			return strings.TrimSpace(row[columns[column]])
		}

		name := field(COL_NAME)
		if name == "" {
			return nil, &DataError{Source: source, Record: fmt.Sprintf("row %d", rowNumber), Field: COL_NAME, Err: errors.New("empty name")}
		}

		lowerName := strings.ToLower(name)
		if seen[lowerName] {
			return nil, &DataError{Source: source, Record: name, Field: COL_NAME, Err: errors.New("duplicate pokemon name")}
		}
		seen[lowerName] = true

		var stats BaseStats
		statFields := []struct {
			column string
			dest   *int
		}{
			{COL_HP, &stats.Hp},
			{COL_ATTACK, &stats.Attack},
			{COL_DEFENSE, &stats.Defense},
			{COL_SPATTACK, &stats.SpecialAttack},
			{COL_SPDEF, &stats.SpecialDefense},
			{COL_SPEED, &stats.Speed},
		}

		for _, stat := range statFields {
			value, err := parseStat(field(stat.column))
			if err != nil {
				return nil, &DataError{Source: source, Record: name, Field: stat.column, Err: err}
			}

			*stat.dest = value
		}

		moves := parseList(field(COL_MOVES))
		if len(lo.Uniq(moves)) == 0 {
			return nil, &DataError{Source: source, Record: name, Field: COL_MOVES, Err: ErrEmptyMovePool}
		}

		types := lo.Map(parseList(field(COL_TYPES)), func(t string, _ int) string {
			return titleCaser.String(t)
		})

		pokemon := PokemonRecord{
			Name:       name,
			Types:      types,
			Abilities:  parseList(field(COL_ABILITIES)),
			Tier:       field(COL_TIER),
			Stats:      stats,
			Evolutions: parseList(field(COL_EVOLUTIONS)),
			Moves:      moves,
		}

		loaderLogger().V(1).Info("loaded pokemon", "name", name, "types", types, "speed", stats.Speed, "move_count", len(moves))

		pokemonList = append(pokemonList, pokemon)
	}

	if len(pokemonList) == 0 {
		return nil, &DataError{Source: source, Record: "file", Err: errors.New("no pokemon records")}
	}

	loaderLogger().Info("Loaded pokemon", "count", len(pokemonList))

	return pokemonList, nil
}

// LoadMoves reads the comma separated move file into a name -> record map.
// "None" in the power, accuracy or pp columns is read as 0. Move names must be unique.
func LoadMoves(source string, r io.Reader) (map[string]MoveRecord, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err != nil {
		return nil, &DataError{Source: source, Record: "header", Err: err}
	}

	columns, err := indexColumns(source, header, moveColumns)
	if err != nil {
		return nil, err
	}

	titleCaser := cases.Title(language.English)
	moves := make(map[string]MoveRecord)
	seen := make(map[string]bool)

	loaderLogger().Info("Loading move data", "source", source)

	for rowNumber := 2; ; rowNumber++ {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DataError{Source: source, Record: fmt.Sprintf("row %d", rowNumber), Err: err}
		}

		if len(row) < len(header) {
			return nil, &DataError{Source: source, Record: fmt.Sprintf("row %d", rowNumber), Err: fmt.Errorf("expected %d fields, got %d", len(header), len(row))}
		}

		field := func(column string) string {
			return strings.TrimSpace(row[columns[column]])
		}

		name := field(COL_MOVE_NAME)
		if name == "" {
			return nil, &DataError{Source: source, Record: fmt.Sprintf("row %d", rowNumber), Field: COL_MOVE_NAME, Err: errors.New("empty name")}
		}

		lowerName := strings.ToLower(name)
		if seen[lowerName] {
			return nil, &DataError{Source: source, Record: name, Field: COL_MOVE_NAME, Err: errors.New("duplicate move name")}
		}
		seen[lowerName] = true

		move := MoveRecord{
			Name:     name,
			Type:     titleCaser.String(field(COL_MOVE_TYPE)),
			Category: titleCaser.String(field(COL_MOVE_CATEGORY)),
		}

		numericFields := []struct {
			column string
			dest   *int
		}{
			{COL_MOVE_PP, &move.PP},
			{COL_MOVE_POWER, &move.Power},
			{COL_MOVE_ACCURACY, &move.Accuracy},
		}

		for _, numeric := range numericFields {
			value, err := parseOptionalInt(field(numeric.column))
			if err != nil {
				return nil, &DataError{Source: source, Record: name, Field: numeric.column, Err: err}
			}

			*numeric.dest = value
		}

		moves[name] = move
	}

	loaderLogger().Info("Loaded moves", "count", len(moves))

	return moves, nil
}

// DefaultLoader loads POKEMON_FILE and MOVE_FILE from the root of files concurrently.
// Any error aborts the whole load, no partial Dex is returned.
func DefaultLoader(files fs.FS) (Dex, error) {
	var dex Dex
	var group errgroup.Group

	group.Go(func() error {
		pokemonFile, err := files.Open(POKEMON_FILE)
		if err != nil {
			return err
		}
		defer pokemonFile.Close()

		pokemon, err := LoadPokemon(POKEMON_FILE, pokemonFile)
		if err != nil {
			return err
		}

		dex.Pokemon = pokemon
		return nil
	})

	group.Go(func() error {
		moveFile, err := files.Open(MOVE_FILE)
		if err != nil {
			return err
		}
		defer moveFile.Close()

		moves, err := LoadMoves(MOVE_FILE, moveFile)
		if err != nil {
			return err
		}

		dex.Moves = moves
		return nil
	})

	if err := group.Wait(); err != nil {
		internalLogger.Error(err, "failed to load data")
		return Dex{}, err
	}

	missing := 0
	for _, pokemon := range dex.Pokemon {
		for _, moveName := range pokemon.Moves {
			if _, ok := dex.Moves[moveName]; !ok {
				missing++
				loaderLogger().V(1).Info("move has no entry in the move file", "pokemon_name", pokemon.Name, "move_name", moveName)
			}
		}
	}

	if missing > 0 {
		loaderLogger().Info("some moves have no type info and will use the default type", "missing_count", missing, "default_type", DEFAULT_MOVE_TYPE)
	}

	return dex, nil
}

func indexColumns(source string, header []string, required []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, column := range header {
		columns[strings.TrimSpace(column)] = i
	}

	for _, column := range required {
		if _, ok := columns[column]; !ok {
			return nil, &DataError{Source: source, Record: "header", Field: column, Err: errors.New("missing column")}
		}
	}

	return columns, nil
}

func parseStat(value string) (int, error) {
	stat, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	if stat <= 0 {
		return 0, fmt.Errorf("stat must be positive, got %d", stat)
	}

	return stat, nil
}

func parseOptionalInt(value string) (int, error) {
	if value == "" || value == noneValue {
		return 0, nil
	}

	// some exports write whole numbers as floats
	value = strings.TrimSuffix(value, ".0")

	return strconv.Atoi(value)
}

// parseList turns "['Tackle', 'Growl']" into []string{"Tackle", "Growl"}
func parseList(value string) []string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "[")
	value = strings.TrimSuffix(value, "]")

	if strings.TrimSpace(value) == "" {
		return nil
	}

	items := lo.Map(strings.Split(value, ","), func(item string, _ int) string {
		return strings.Trim(strings.TrimSpace(item), `'"`)
	})

	return lo.Filter(items, func(item string, _ int) bool {
		return item != ""
	})
}
