package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/connectfour/stats"
)

// AnalyzeLogFile analyzes the given autoplay log and spits out a bunch of
// statistics.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return analyzeLog(file)
}

func analyzeLog(in io.Reader) (string, error) {
	r := csv.NewReader(in)
	// Records look like:
	// playerID,gameID,turn,play,movecount
	// and, once per game:
	// result,gameID,length,winner,movecount

	wins := map[string]int{}
	openings := map[string]int{}
	lengths := &stats.Statistic{}
	draws := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "playerID" {
			// this is the header line
			continue
		}
		if record[0] == "result" {
			length, err := strconv.Atoi(record[2])
			if err != nil {
				return "", err
			}
			lengths.Push(float64(length))
			if record[3] == "draw" {
				draws++
			} else {
				wins[record[3]]++
			}
			continue
		}
		if record[2] == "1" {
			openings[record[3]]++
		}
	}

	gamesPlayed := lengths.Iterations()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", gamesPlayed)
	names := lo.Keys(wins)
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "%v wins: %d (%.3f%%)\n", name, wins[name], pct(wins[name], gamesPlayed))
	}
	fmt.Fprintf(&sb, "Draws: %d (%.3f%%)\n", draws, pct(draws, gamesPlayed))
	fmt.Fprintf(&sb, "Mean length: %.6f  Stdev: %.6f\n", lengths.Mean(), lengths.Stdev())
	plays := lo.Keys(openings)
	sort.Slice(plays, func(i, j int) bool {
		if openings[plays[i]] != openings[plays[j]] {
			return openings[plays[i]] > openings[plays[j]]
		}
		return plays[i] < plays[j]
	})
	sb.WriteString("Opening plays:\n")
	for _, p := range plays {
		fmt.Fprintf(&sb, "  %v: %d\n", p, openings[p])
	}
	return sb.String(), nil
}
