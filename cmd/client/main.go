package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"strings"

	"tableside/internal/config"
	"tableside/pkg/action"
	"tableside/pkg/room"
	"tableside/pkg/ui"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
)

// Version is the client version
var Version = "v0.0.0-dev"

var tableID = flag.String("table", "", "the table to join (overrides the config)")
var playerID = flag.String("player", "", "your player name (overrides the config)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	tbl := cfg.TableID
	if *tableID != "" {
		tbl = *tableID
	}
	player := cfg.PlayerID
	if *playerID != "" {
		player = *playerID
	}

	if tbl == "" || player == "" {
		logrus.Fatal("a table and a player name are required")
	}

	logrus.WithField("version", Version).WithField("table", tbl).WithField("player", player).Debug("starting")

	renderer := ui.NewRenderer()
	session := room.NewSession(renderer)

	endpoint := room.Endpoint(cfg.ServerURL, tbl, player)
	if err := session.Dial(context.Background(), endpoint); err != nil {
		logrus.WithError(err).Fatal("could not reach the card room")
	}
	defer session.Close()

	inputLoop(session)
}

func inputLoop(session *room.Session) {
	for {
		select {
		case <-session.Done():
			return
		default:
		}

		input, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText("command (ready, sitout, buyin, fold, check, call, bet <n>, raise <n>, allin, quit)").
			Show()

		if !dispatch(session, input) {
			return
		}
	}
}

// dispatch runs one user command; it returns false when the session is over
func dispatch(session *room.Session, input string) bool {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(fields) == 0 {
		return true
	}

	var err error
	switch fields[0] {
	case "quit", "exit":
		session.Close()
		return false
	case "ready":
		err = session.DeclareReady()
	case "sitout", "sit":
		err = session.SitOut()
	case "buyin":
		err = session.BuyIn()
	case "fold":
		err = session.SubmitAction(action.Fold)
	case "check":
		err = session.SubmitAction(action.Check)
	case "call":
		err = session.SubmitAction(action.Call)
	case "bet", "raise":
		err = submitBet(session, fields)
	case "allin":
		err = session.SubmitAction(action.AllIn)
	default:
		pterm.Warning.Printfln("Sorry, %q isn't a command here.", fields[0])
		return true
	}

	if err != nil {
		pterm.Warning.Println(err.Error())
	}

	return true
}

// submitBet handles "bet <cents>" and "raise <cents>". Without an amount
// the pending bet is used as-is.
func submitBet(session *room.Session, fields []string) error {
	if len(fields) > 1 {
		amount, err := strconv.Atoi(fields[1])
		if err != nil {
			pterm.Warning.Printfln("Sorry, %q isn't an amount in cents.", fields[1])
			return nil
		}

		session.SetPendingBet(amount)
	}

	t := action.Bet
	if fields[0] == "raise" {
		t = action.Raise
	}

	return session.SubmitAction(t)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
