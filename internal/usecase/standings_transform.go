package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Checo3x/Washington-Commanders-Hub/internal/domain/standings"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/render"
)

var summaryRegex = regexp.MustCompile(`^(\d+)-(\d+)(?:-(\d+))?$`)

// NewStandingsTransform extracts the tracked team's record from one of three
// upstream layouts, tried in fixed priority order:
//
//	a. conference/division tree: children[].standings.entries[] matched by
//	   team id
//	b. flat record.items[] tagged as total
//	c. flat records[] tagged total or named Overall
//
// Within the matched record object, a compact summary string wins over the
// named statistics list.
func NewStandingsTransform(trackedTeamID, trackedTeamName string) func(map[string]any) (Fragment, error) {
	return func(payload map[string]any) (Fragment, error) {
		recordObj := findTrackedEntry(payload, trackedTeamID)
		if recordObj == nil {
			recordObj = findTotalRecordItem(payload)
		}
		if recordObj == nil {
			recordObj = findOverallRecord(payload)
		}
		if recordObj == nil {
			return Fragment{}, nil
		}

		record, ok := extractRecord(recordObj)
		if !ok {
			return Fragment{}, nil
		}

		return Fragment{HTML: render.Standings(trackedTeamName, record)}, nil
	}
}

// findTrackedEntry walks the groups tree looking for a standings entry whose
// team id matches the tracked team. Groups nest arbitrarily deep via
// "children".
func findTrackedEntry(node map[string]any, trackedTeamID string) map[string]any {
	if node == nil {
		return nil
	}

	table := getMap(node, "standings")
	for _, item := range getList(table, "entries") {
		entry := asMap(item)
		if entry == nil {
			continue
		}
		team := getMap(entry, "team")
		if getString(team, "id") == trackedTeamID {
			return entry
		}
	}

	for _, item := range getList(node, "children") {
		if group := asMap(item); group != nil {
			if entry := findTrackedEntry(group, trackedTeamID); entry != nil {
				return entry
			}
		}
	}
	return nil
}

func findTotalRecordItem(payload map[string]any) map[string]any {
	record := getMap(payload, "record")
	for _, item := range getList(record, "items") {
		row := asMap(item)
		if row == nil {
			continue
		}
		if strings.EqualFold(getString(row, "type"), "total") {
			return row
		}
	}
	return nil
}

func findOverallRecord(payload map[string]any) map[string]any {
	for _, item := range getList(payload, "records") {
		row := asMap(item)
		if row == nil {
			continue
		}
		if strings.EqualFold(getString(row, "type"), "total") ||
			strings.EqualFold(getString(row, "name"), "Overall") {
			return row
		}
	}
	return nil
}

func extractRecord(recordObj map[string]any) (standings.Record, bool) {
	if record, ok := recordFromSummary(getString(recordObj, "summary")); ok {
		return record, true
	}
	return recordFromStats(getList(recordObj, "stats"))
}

func recordFromSummary(summary string) (standings.Record, bool) {
	match := summaryRegex.FindStringSubmatch(strings.TrimSpace(summary))
	if match == nil {
		return standings.Record{}, false
	}

	wins, _ := strconv.ParseUint(match[1], 10, 32)
	losses, _ := strconv.ParseUint(match[2], 10, 32)
	var ties uint64
	if match[3] != "" {
		ties, _ = strconv.ParseUint(match[3], 10, 32)
	}

	return standings.Record{
		Wins:   uint(wins),
		Losses: uint(losses),
		Ties:   uint(ties),
		Source: standings.SourceSummary,
	}, true
}

// recordFromStats resolves wins/losses/ties from a named statistics list.
// The wins entry must be present, even at zero; otherwise the list is
// considered unresolved.
func recordFromStats(stats []any) (standings.Record, bool) {
	record := standings.Record{Source: standings.SourceStats}
	haveWins := false

	for _, item := range stats {
		stat := asMap(item)
		if stat == nil {
			continue
		}

		name := strings.ToLower(firstNonEmpty(
			getString(stat, "name"),
			getString(stat, "abbreviation"),
			getString(stat, "type"),
		))
		value, ok := coerceUint(statValue(stat))
		if !ok {
			value = 0
		}

		switch name {
		case "wins", "w":
			record.Wins = value
			haveWins = true
		case "losses", "l":
			record.Losses = value
		case "ties", "t":
			record.Ties = value
		}
	}

	if !haveWins {
		return standings.Record{}, false
	}
	return record, true
}

func statValue(stat map[string]any) any {
	if value, ok := stat["value"]; ok && value != nil {
		return value
	}
	return stat["displayValue"]
}
