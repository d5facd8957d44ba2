package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/sim"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

const stateHelp = `Feedback digits:

  0  initial (only in the empty-history token -----:00000)
  1  gray    letter not in the answer
  2  yellow  letter in the answer, elsewhere
  3  green   letter in the right place

Example state:

  -----:00000,arose:31112,amend:31211`

// options are the settings shared by every command. Defaults come from the
// environment (and .env), flags override them.
type options struct {
	wordsFile   string
	wordsDB     string
	openerCache string
	dailySalt   string
	logLevel    string
	workers     int
}

func defaultOptions() *options {
	workers, err := strconv.Atoi(getEnv("SOLVER_WORKERS", "0"))
	if err != nil {
		log.Warn().Err(err).Str("SOLVER_WORKERS", os.Getenv("SOLVER_WORKERS")).Msg("ignoring invalid worker count")
		workers = 0
	}
	return &options{
		wordsFile:   os.Getenv("WORDS_FILE"),
		wordsDB:     os.Getenv("WORDS_DB"),
		openerCache: os.Getenv("OPENER_CACHE"),
		dailySalt:   getEnv("DAILY_SALT", "local_dev_salt"),
		logLevel:    getEnv("LOG_LEVEL", "info"),
		workers:     workers,
	}
}

func newRootCmd() *cobra.Command {
	opts := defaultOptions()
	var (
		count   bool
		blocked []string
	)

	root := &cobra.Command{
		Use:   "wordle-solver <state>",
		Short: "Suggest the next Wordle guess from the play history",
		Long:  "Narrows the dictionary to the words consistent with the play history\nand prints the guess expected to reveal the most information.\n\n" + stateHelp,
		Args:  cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Changed("log-level") {
				setupLogging(opts.logLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), cmd.OutOrStdout(), opts, args[0], blocked, count)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.wordsFile, "words-file", opts.wordsFile, "dictionary text file, one word per line (env WORDS_FILE)")
	pf.StringVar(&opts.wordsDB, "words-db", opts.wordsDB, "SQLite dictionary filled by the import command (env WORDS_DB)")
	pf.StringVar(&opts.openerCache, "opener-cache", opts.openerCache, "SQLite file caching opening guesses (env OPENER_CACHE)")
	pf.IntVar(&opts.workers, "workers", opts.workers, "scoring goroutines, 0 = GOMAXPROCS (env SOLVER_WORKERS)")
	pf.StringVar(&opts.logLevel, "log-level", opts.logLevel, "debug|info|warn|error (env LOG_LEVEL)")

	root.Flags().BoolVarP(&count, "count", "c", false, "show the number of remaining candidates")
	root.Flags().StringSliceVarP(&blocked, "blocked", "b", nil, "words never to suggest (repeatable)")

	root.AddCommand(newSimulateCmd(opts), newBenchCmd(opts), newImportCmd(opts))
	return root
}

// protectSentinel moves a state argument that starts with '-' (the empty
// history "-----:00000") behind "--" so it is not parsed as a flag.
func protectSentinel(args []string) []string {
	for _, a := range args {
		if a == "--" {
			return args
		}
	}
	out := make([]string, 0, len(args)+1)
	var state string
	for _, a := range args {
		if state == "" && strings.HasPrefix(a, "---") {
			state = a
			continue
		}
		out = append(out, a)
	}
	if state == "" {
		return args
	}
	return append(out, "--", state)
}

// ------------------------------- solve -------------------------------------

func runSolve(ctx context.Context, out io.Writer, opts *options, state string, rawBlocked []string, count bool) error {
	history, err := game.ParseHistory(state)
	if err != nil {
		return &exitError{code: 1, msg: "invalid history", err: err}
	}

	dict, err := words.Load(ctx, words.Config{DBPath: opts.wordsDB, FilePath: opts.wordsFile})
	if err != nil {
		return &exitError{code: 1, msg: "failed to load dictionary", err: err}
	}
	blockedWords := resolveBlocked(rawBlocked)
	blocked := solver.NewBlockedSet(dict.Words(), blockedWords)

	pool := solver.Filter(dict.Words(), history)
	log.Debug().Int("turns", len(history)).Int("pool", len(pool)).Int("dictionary", dict.Len()).Msg("filtered candidates")

	sel := solver.NewSelector(solver.WithWorkers(opts.workers))
	var res solver.Result
	if len(history) == 0 {
		res, err = cachedOpener(ctx, opts, sel, dict, blockedWords, blocked)
	} else {
		res, err = sel.Select(ctx, pool, dict.Words(), blocked)
	}
	switch {
	case errors.Is(err, solver.ErrEmptyPool):
		return &exitError{code: 2, msg: "no word matches the history", err: err}
	case err != nil:
		return &exitError{code: 1, msg: "failed to pick a guess", err: err}
	}

	if count {
		render(out, res.Word, &res.PoolSize)
	} else {
		render(out, res.Word, nil)
	}
	return nil
}

func render(out io.Writer, w game.Word, poolSize *int) {
	if poolSize != nil {
		fmt.Fprintf(out, "%s (%d)\n", w, *poolSize)
		return
	}
	fmt.Fprintln(out, w)
}

// resolveBlocked parses --blocked values, dropping (and logging) malformed ones.
func resolveBlocked(raw []string) []game.Word {
	valid, invalid := words.Resolve(raw)
	for _, s := range invalid {
		log.Warn().Str("word", s).Msg("ignoring blocked entry that is not a 5-letter word")
	}
	return valid
}

// cachedOpener returns the first guess for an empty history, consulting the
// opener cache before scoring the whole dictionary.
func cachedOpener(ctx context.Context, opts *options, sel *solver.Selector, dict *words.Dictionary, blockedWords []game.Word, blocked *solver.BlockedSet) (solver.Result, error) {
	cache, closeCache, err := openCache(opts)
	if err != nil {
		log.Warn().Err(err).Str("path", opts.openerCache).Msg("opener cache unavailable")
		cache, closeCache = store.NewMemoryCache(), func() {}
	}
	defer closeCache()

	key := store.Fingerprint(dict.Words(), blockedWords)
	if o, ok, err := cache.Get(ctx, key); err != nil {
		log.Warn().Err(err).Msg("opener cache read")
	} else if ok {
		log.Debug().Str("key", key[:12]).Str("guess", o.Word.String()).Msg("opener cache hit")
		return solver.Result{Word: o.Word, PoolSize: o.PoolSize, Score: o.Bits}, nil
	}

	res, err := sel.Select(ctx, dict.Words(), dict.Words(), blocked)
	if err != nil {
		return res, err
	}
	if err := cache.Put(ctx, key, store.Opener{Word: res.Word, PoolSize: res.PoolSize, Bits: res.Score}); err != nil {
		log.Warn().Err(err).Msg("opener cache write")
	}
	return res, nil
}

func openCache(opts *options) (store.OpenerCache, func(), error) {
	if opts.openerCache == "" {
		return store.NewMemoryCache(), func() {}, nil
	}
	db, err := store.Open(opts.openerCache)
	if err != nil {
		return nil, nil, err
	}
	return store.NewSQLCache(db), func() { _ = db.Close() }, nil
}

// ------------------------------ simulate -----------------------------------

func newSimulateCmd(opts *options) *cobra.Command {
	var (
		useDaily bool
		maxTurns int
		blocked  []string
	)
	cmd := &cobra.Command{
		Use:   "simulate [answer]",
		Short: "Let the solver play against a known answer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dict, err := words.Load(ctx, words.Config{DBPath: opts.wordsDB, FilePath: opts.wordsFile})
			if err != nil {
				return &exitError{code: 1, msg: "failed to load dictionary", err: err}
			}

			var answer game.Word
			switch {
			case useDaily:
				var ok bool
				if answer, ok = daily.Answer(time.Now(), opts.dailySalt, dict.Words()); !ok {
					return &exitError{code: 1, msg: "no daily answer", err: words.ErrEmptyDictionary}
				}
				log.Info().Str("date", daily.DateKey(time.Now())).Msg("playing the daily answer")
			case len(args) == 1:
				if answer, err = game.ParseWord(args[0]); err != nil {
					return &exitError{code: 1, msg: "invalid answer", err: err}
				}
			default:
				return &exitError{code: 1, msg: "give an answer or --daily"}
			}
			if !dict.Contains(answer) {
				log.Warn().Str("answer", answer.String()).Msg("answer is not in the dictionary")
			}

			blockedWords := resolveBlocked(blocked)
			bs := solver.NewBlockedSet(dict.Words(), blockedWords)
			sel := solver.NewSelector(solver.WithWorkers(opts.workers))
			opener, err := cachedOpener(ctx, opts, sel, dict, blockedWords, bs)
			if err != nil {
				return &exitError{code: 1, msg: "failed to pick an opener", err: err}
			}

			p := &sim.Player{Selector: sel, Dict: dict.Words(), Blocked: bs, MaxTurns: maxTurns, Opener: &opener}
			g, err := p.Play(ctx, answer)
			out := cmd.OutOrStdout()
			for i, t := range g.Turns {
				fmt.Fprintf(out, "%d. %s %s (%d)\n", i+1, t.Guess, t.Mask, t.PoolSize)
			}
			if err != nil {
				if errors.Is(err, solver.ErrEmptyPool) {
					return &exitError{code: 2, msg: "no word matches the history", err: err}
				}
				return &exitError{code: 1, msg: "simulation failed", err: err}
			}
			if !g.Solved {
				fmt.Fprintf(out, "not solved in %d turns\n", len(g.Turns))
				return &exitError{code: 3, msg: "not solved"}
			}
			fmt.Fprintf(out, "solved in %d\n", len(g.Turns))
			return nil
		},
	}
	cmd.Flags().BoolVar(&useDaily, "daily", false, "play the answer picked for today's date (salt from DAILY_SALT)")
	cmd.Flags().IntVar(&maxTurns, "max-turns", sim.DefaultMaxTurns, "give up after this many guesses")
	cmd.Flags().StringSliceVarP(&blocked, "blocked", "b", nil, "words never to suggest (repeatable)")
	return cmd
}

// ------------------------------- bench -------------------------------------

func newBenchCmd(opts *options) *cobra.Command {
	var (
		limit    int
		maxTurns int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Play every dictionary word as the answer and report the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dict, err := words.Load(ctx, words.Config{DBPath: opts.wordsDB, FilePath: opts.wordsFile})
			if err != nil {
				return &exitError{code: 1, msg: "failed to load dictionary", err: err}
			}
			answers := dict.Words()
			if limit > 0 && limit < len(answers) {
				answers = answers[:limit]
			}

			// Games run in parallel, so each one scores on a single goroutine.
			sel := solver.NewSelector(solver.WithWorkers(1))
			opener, err := cachedOpener(ctx, opts, solver.NewSelector(solver.WithWorkers(opts.workers)), dict, nil, nil)
			if err != nil {
				return &exitError{code: 1, msg: "failed to pick an opener", err: err}
			}
			p := &sim.Player{Selector: sel, Dict: dict.Words(), MaxTurns: maxTurns, Opener: &opener}

			var progress io.Writer
			if isatty.IsTerminal(os.Stderr.Fd()) {
				progress = os.Stderr
			}
			start := time.Now()
			sum, err := p.Bench(ctx, answers, opts.workers, progress)
			if err != nil {
				return &exitError{code: 1, msg: "benchmark failed", err: err}
			}
			log.Info().
				Int("games", sum.Games).
				Int("solved", sum.Solved).
				Float64("meanTurns", sum.MeanTurns()).
				Dur("took", time.Since(start)).
				Msg("benchmark finished")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "opener %s\n", opener.Word)
			fmt.Fprintf(out, "solved %d/%d, mean %.3f turns\n", sum.Solved, sum.Games, sum.MeanTurns())
			for turns := 1; turns <= p.MaxTurns; turns++ {
				fmt.Fprintf(out, "%d: %d\n", turns, sum.Histogram[turns])
			}
			for _, w := range sum.Failed {
				fmt.Fprintf(out, "failed %s\n", w)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "only play the first N dictionary words (0 = all)")
	cmd.Flags().IntVar(&maxTurns, "max-turns", sim.DefaultMaxTurns, "give up after this many guesses")
	return cmd
}

// ------------------------------- import ------------------------------------

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load a word list into the SQLite dictionary (--words-db)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.wordsDB == "" {
				return &exitError{code: 1, msg: "import needs --words-db or WORDS_DB"}
			}
			raw, err := words.ReadFile(args[0])
			if err != nil {
				return &exitError{code: 1, msg: "failed to read word list", err: err}
			}
			list := words.New(raw).Strings()
			if len(list) == 0 {
				return &exitError{code: 1, msg: "nothing to import", err: words.ErrEmptyDictionary}
			}

			db, err := store.Open(opts.wordsDB)
			if err != nil {
				return &exitError{code: 1, msg: "failed to open dictionary db", err: err}
			}
			defer db.Close()

			n, err := store.NewWordStore(db).Replace(cmd.Context(), list)
			if err != nil {
				return &exitError{code: 1, msg: "import failed", err: err}
			}
			log.Info().Str("db", opts.wordsDB).Int("words", n).Int("skipped", len(raw)-n).Msg("dictionary imported")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d words\n", n)
			return nil
		},
	}
}
