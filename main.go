// botbrowser is a terminal browser for character cards aggregated from
// third-party community catalogs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"

	"botbrowser/blocklist"
	"botbrowser/card"
	"botbrowser/config"
	"botbrowser/favorites"
	"botbrowser/imagecheck"
	"botbrowser/sources"
	"botbrowser/tokens"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "-h", "--help", "help":
		printUsage()
		return
	case "--init-config":
		fmt.Print(config.DefaultTOML())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fatalf("loading config: %v", err)
	}
	setupLogging(cfg.Log.Level)

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "browse":
		err = runBrowse(cfg, args)
	case "search":
		err = runSearch(cfg, args)
	case "random":
		err = runRandom(cfg, args)
	case "checkimages":
		err = runCheckImages(cfg, args)
	case "token":
		err = runToken(args)
	case "block":
		err = runBlock(args)
	case "fav":
		err = runFav(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fatalf("%v", err)
	}
}

func printUsage() {
	fmt.Print(`botbrowser - browse character cards from community catalogs

Usage:
  botbrowser browse [flags]          List cards from all enabled sources
  botbrowser search <query> [flags]  Fuzzy-search fetched cards
  botbrowser random [flags]          Pick a random card
  botbrowser checkimages [flags]     Validate thumbnails, report broken ones
  botbrowser token set|show|clear    Manage the Chub API token
  botbrowser block add|rm|list       Manage blocklist terms
  botbrowser fav add|rm|list         Manage favourite cards
  botbrowser --init-config           Print a default config file

Browse flags:
  -tag t        Require a tag (repeatable)
  -creator c    Filter by creator
  -nsfw p       NSFW policy: allow, exclude or only
  -sort s       Sort token (local: name_asc, name_desc, creator_asc,
                creator_desc, relevance; otherwise forwarded to the API)
  -search q     Source-side search term
  -first n      Page size per source
`)
}

// setupLogging configures the global zerolog logger.
func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// stringsFlag collects repeated flag values.
type stringsFlag []string

func (s *stringsFlag) String() string { return strings.Join(*s, ",") }

func (s *stringsFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// listFlags holds the shared browse/random/search filter flags.
type listFlags struct {
	tags    stringsFlag
	creator string
	nsfw    string
	sort    string
	search  string
	first   int
}

func addListFlags(fs *flag.FlagSet, cfg *config.Config, lf *listFlags) {
	fs.Var(&lf.tags, "tag", "require a tag (repeatable)")
	fs.StringVar(&lf.creator, "creator", "", "filter by creator")
	fs.StringVar(&lf.nsfw, "nsfw", cfg.Browse.NSFWPolicy, "nsfw policy: allow, exclude or only")
	fs.StringVar(&lf.sort, "sort", cfg.Browse.DefaultSort, "sort token")
	fs.StringVar(&lf.search, "search", "", "source-side search term")
	fs.IntVar(&lf.first, "first", cfg.Browse.PageSize, "page size per source")
}

// buildSources maps the enabled source names to adapters.
func buildSources(cfg *config.Config) ([]sources.Source, error) {
	tok, err := tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("loading tokens: %w", err)
	}

	var srcs []sources.Source
	for _, name := range cfg.Sources.Enabled {
		switch name {
		case "chub":
			srcs = append(srcs, sources.NewChub(tok.Get(tokens.ChubAPIToken)))
		case "aicc":
			srcs = append(srcs, sources.NewAICC())
		case "tavern":
			srcs = append(srcs, sources.NewTavern(cfg.Fetcher.UserAgent))
		default:
			notifyWarn("unknown source %q in config, skipping", name)
		}
	}
	if len(srcs) == 0 {
		return nil, fmt.Errorf("no sources enabled")
	}
	return srcs, nil
}

// fetchMerged fetches from all enabled sources and merges the results.
// Per-source failures become warnings, not a fatal error; only all
// sources failing aborts.
func fetchMerged(cfg *config.Config, lf *listFlags) ([]card.Card, error) {
	srcs, err := buildSources(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Fetcher.TimeoutSeconds+5)*time.Second)
	defer cancel()

	policy, err := card.ParseNSFWPolicy(lf.nsfw)
	if err != nil {
		return nil, err
	}

	agg := sources.NewAggregator(srcs...)
	agg.SetConcurrency(cfg.Sources.Concurrency)
	cards, errs := agg.FetchAll(ctx, sources.Query{
		Search: lf.search,
		Sort:   lf.sort,
		First:  lf.first,
		NSFW:   policy != card.NSFWExclude,
	})

	for name, err := range errs {
		notifyWarn("source %s failed: %v", name, err)
	}
	if len(errs) == len(srcs) {
		return nil, fmt.Errorf("all sources failed")
	}

	return applyFilters(cards, lf)
}

// applyFilters runs the local filter pass over merged cards.
func applyFilters(cards []card.Card, lf *listFlags) ([]card.Card, error) {
	policy, err := card.ParseNSFWPolicy(lf.nsfw)
	if err != nil {
		return nil, err
	}

	bl, err := blocklist.Load()
	if err != nil {
		return nil, fmt.Errorf("loading blocklist: %w", err)
	}

	return card.Filter(cards, card.Criteria{
		Tags:      lf.tags,
		Creator:   lf.creator,
		NSFW:      policy,
		Blocklist: bl.Terms,
	}), nil
}

func runBrowse(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	var lf listFlags
	addListFlags(fs, cfg, &lf)
	fs.Parse(args)

	cards, err := fetchMerged(cfg, &lf)
	if err != nil {
		return err
	}

	cards = card.Sort(cards, lf.sort)
	printCards(cards)
	return nil
}

func runSearch(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	var lf listFlags
	addListFlags(fs, cfg, &lf)
	fs.Parse(args)

	query := strings.Join(fs.Args(), " ")
	if query == "" {
		return fmt.Errorf("search needs a query")
	}

	// Forward the query to the sources too, so they pre-narrow.
	if lf.search == "" {
		lf.search = query
	}

	cards, err := fetchMerged(cfg, &lf)
	if err != nil {
		return err
	}

	cards = card.Search(cards, query)
	cards = card.Sort(cards, card.SortRelevance)
	printCards(cards)
	return nil
}

func runRandom(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("random", flag.ExitOnError)
	var lf listFlags
	addListFlags(fs, cfg, &lf)
	fs.Parse(args)

	cards, err := fetchMerged(cfg, &lf)
	if err != nil {
		return err
	}

	pick := card.Random(cards)
	if pick == nil {
		notifyWarn("no cards matched the filters")
		return nil
	}
	printCardDetail(*pick)
	return nil
}

func runCheckImages(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("checkimages", flag.ExitOnError)
	var lf listFlags
	addListFlags(fs, cfg, &lf)
	rendered := fs.Bool("rendered", false, "retry failures in headless Chrome")
	fs.Parse(args)

	cards, err := fetchMerged(cfg, &lf)
	if err != nil {
		return err
	}

	checker := imagecheck.New(imagecheck.Options{
		UserAgent:        cfg.Fetcher.UserAgent,
		TimeoutSeconds:   cfg.Fetcher.TimeoutSeconds,
		Placeholder:      cfg.Images.Placeholder,
		ChromePath:       cfg.Images.ChromePath,
		RenderedFallback: *rendered,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cards, swapped := checker.Sanitize(ctx, cards)
	if swapped == 0 {
		notifyInfo("all %d thumbnails loaded", len(cards))
	} else {
		notifyWarn("%d of %d thumbnails broken, placeholder substituted", swapped, len(cards))
	}
	printCards(cards)
	return nil
}

func runToken(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: botbrowser token set <value> | show | clear")
	}

	store, err := tokens.Load()
	if err != nil {
		return fmt.Errorf("loading tokens: %w", err)
	}

	switch args[0] {
	case "set":
		if len(args) < 2 {
			return fmt.Errorf("usage: botbrowser token set <value>")
		}
		store.Set(tokens.ChubAPIToken, args[1])
		if err := store.Save(); err != nil {
			return fmt.Errorf("saving tokens: %w", err)
		}
		notifyInfo("Chub API token saved")
	case "show":
		tok := store.Get(tokens.ChubAPIToken)
		if tok == "" {
			fmt.Println("(no token set)")
		} else {
			fmt.Println(tok)
		}
	case "clear":
		if !store.Clear(tokens.ChubAPIToken) {
			notifyWarn("no token to clear")
			return nil
		}
		if err := store.Save(); err != nil {
			return fmt.Errorf("saving tokens: %w", err)
		}
		notifyInfo("Chub API token cleared")
	default:
		return fmt.Errorf("unknown token subcommand %q", args[0])
	}
	return nil
}

func runBlock(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: botbrowser block add <term> | rm <term> | list")
	}

	store, err := blocklist.Load()
	if err != nil {
		return fmt.Errorf("loading blocklist: %w", err)
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: botbrowser block add <term>")
		}
		if !store.Add(args[1]) {
			notifyWarn("term already blocked")
			return nil
		}
		if err := store.Save(); err != nil {
			return fmt.Errorf("saving blocklist: %w", err)
		}
		notifyInfo("blocked %q", strings.ToLower(args[1]))
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: botbrowser block rm <term>")
		}
		if !store.Remove(args[1]) {
			notifyWarn("term not found")
			return nil
		}
		if err := store.Save(); err != nil {
			return fmt.Errorf("saving blocklist: %w", err)
		}
		notifyInfo("unblocked %q", strings.ToLower(args[1]))
	case "list":
		if store.Len() == 0 {
			fmt.Println("(blocklist empty)")
			return nil
		}
		for _, term := range store.Terms {
			fmt.Println(term)
		}
	default:
		return fmt.Errorf("unknown block subcommand %q", args[0])
	}
	return nil
}

func runFav(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: botbrowser fav add <name> | rm <key> | list")
	}

	store, err := favorites.Load()
	if err != nil {
		return fmt.Errorf("loading favorites: %w", err)
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: botbrowser fav add <name>")
		}
		query := strings.Join(args[1:], " ")

		lf := listFlags{search: query, first: cfg.Browse.PageSize, nsfw: "allow", sort: cfg.Browse.DefaultSort}
		cards, err := fetchMerged(cfg, &lf)
		if err != nil {
			return err
		}
		matches := card.Search(cards, query)
		if len(matches) == 0 {
			notifyWarn("no card matching %q", query)
			return nil
		}

		best := matches[0]
		if !store.Add(best) {
			notifyWarn("%s by %s already favourited", best.Name, best.Creator)
			return nil
		}
		if err := store.Save(); err != nil {
			return fmt.Errorf("saving favorites: %w", err)
		}
		notifyInfo("favourited %s by %s (%s)", best.Name, best.Creator, best.Service)
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: botbrowser fav rm <key>")
		}
		if !store.Remove(args[1]) {
			notifyWarn("favorite %q not found", args[1])
			return nil
		}
		if err := store.Save(); err != nil {
			return fmt.Errorf("saving favorites: %w", err)
		}
		notifyInfo("removed %q", args[1])
	case "list":
		if store.Len() == 0 {
			fmt.Println("(no favorites)")
			return nil
		}
		for _, f := range store.Favorites {
			fmt.Printf("%-40s %-20s %s\n", f.Key, f.Service, f.CardURL)
		}
	default:
		return fmt.Errorf("unknown fav subcommand %q", args[0])
	}
	return nil
}

// printCards renders a listing sized to the terminal.
func printCards(cards []card.Card) {
	if len(cards) == 0 {
		fmt.Println("(no cards)")
		return
	}

	favs, _ := favorites.Load()
	width := termWidth()

	for _, c := range cards {
		marker := " "
		if favs != nil && favs.Has(c) {
			marker = "★"
		}
		nsfw := ""
		if c.NSFW {
			nsfw = colorRed + " [nsfw]" + colorReset
		}

		line := fmt.Sprintf("%s %-28s %s%-16s%s %-8s%s  %s",
			marker, clip(c.Name, 28), colorDim, clip(c.Creator, 16), colorReset,
			c.Service, nsfw, strings.Join(c.Tags, ","))
		fmt.Println(clipANSI(line, width))
	}
	fmt.Printf("\n%d cards\n", len(cards))
}

// printCardDetail renders a single card in full.
func printCardDetail(c card.Card) {
	fmt.Printf("%s%s%s by %s (%s)\n", colorBold, c.Name, colorReset, c.Creator, c.Service)
	if c.NSFW {
		fmt.Printf("%s[nsfw]%s\n", colorRed, colorReset)
	}
	if len(c.Tags) > 0 {
		fmt.Printf("tags: %s\n", strings.Join(c.Tags, ", "))
	}
	if c.Preview != "" {
		fmt.Printf("\n%s\n", c.Preview)
	}
	if c.CardURL != "" {
		fmt.Printf("\n%s\n", c.CardURL)
	}
	if c.AvatarURL != "" {
		fmt.Printf("%s%s%s\n", colorDim, c.AvatarURL, colorReset)
	}
}

// termWidth returns the terminal width, falling back to 100 columns
// when stdout isn't a terminal.
func termWidth() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 100
	}
	return int(ws.Col)
}

// clip truncates a plain string to n runes.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// clipANSI truncates a line to the terminal width, counting printable
// runes only so color escapes don't eat into the budget.
func clipANSI(s string, width int) string {
	var b strings.Builder
	printed := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			b.WriteRune(r)
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			b.WriteRune(r)
			inEscape = true
		default:
			if printed >= width {
				return b.String() + colorReset
			}
			b.WriteRune(r)
			printed++
		}
	}
	return b.String()
}

// ANSI styling for notices and markers.
const (
	colorReset  = "\x1b[0m"
	colorBold   = "\x1b[1m"
	colorDim    = "\x1b[2m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorGreen  = "\x1b[32m"
)

// The extension surfaced these as toasts; here they're colored notices
// on stderr so they don't pollute piped listings.
func notifyInfo(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, colorGreen+"✓ "+colorReset+format+"\n", args...)
}

func notifyWarn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, colorYellow+"! "+colorReset+format+"\n", args...)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, colorRed+"error: "+colorReset+format+"\n", args...)
	os.Exit(1)
}
