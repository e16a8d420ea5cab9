package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"rosteriq/internal/storage"
)

type playerMatch struct {
	info  storage.PlayerInfo
	score int
}

// Players searches the player directory by fuzzy name match.
func (a *App) Players(ctx context.Context, opts PlayersOptions) error {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return errors.New("a search query is required")
	}

	pipe, err := a.newPipeline(ctx)
	if err != nil {
		return err
	}
	defer pipe.close()

	players, err := pipe.store.ListPlayers(ctx)
	if err != nil {
		return err
	}

	matches := make([]playerMatch, 0)
	for _, info := range players {
		rank := fuzzy.RankMatchNormalizedFold(query, info.Name)
		if rank < 0 {
			continue
		}
		matches = append(matches, playerMatch{info: info, score: rank})
	}

	if len(matches) == 0 {
		fmt.Fprintf(os.Stdout, "no players match %q\n", query)
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})
	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tPlayer\tPos\tTeam")
	for _, match := range matches {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", match.info.PlayerID, match.info.Name, match.info.Position, match.info.Team)
	}
	writer.Flush()
	return nil
}
