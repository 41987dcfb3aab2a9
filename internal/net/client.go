package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/peterkuimelis/deckclash/internal/session"
)

// Client connects to a battle server and provides a terminal REPL.
type Client struct {
	Starter    string // starter id; prompted for when empty
	Difficulty string // opponent difficulty; server default when empty

	in   *bufio.Reader
	out  io.Writer
	conn net.Conn
	last *session.StateView
}

// NewClient creates a client reading commands from in and writing to out.
// Nil in/out default to stdin/stdout.
func NewClient(starter, difficulty string, in io.Reader, out io.Writer) *Client {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Client{Starter: starter, Difficulty: difficulty, in: bufio.NewReader(in), out: out}
}

// Connect dials a server and runs the REPL until the battle ends.
func (c *Client) Connect(ctx context.Context, addr string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()
	c.conn = conn
	return c.RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively. It returns
// nil when the battle ends or the user quits.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	var welcome ServerMessage
	if err := dec.Decode(&welcome); err != nil {
		return fmt.Errorf("read welcome: %w", err)
	}
	if welcome.Type != MsgWelcome {
		return fmt.Errorf("expected welcome, got %q", welcome.Type)
	}
	starter, ok := c.chooseStarter(welcome.Starters)
	if !ok {
		return enc.Encode(ClientMessage{Type: MsgQuit})
	}
	if err := enc.Encode(ClientMessage{Type: MsgStart, Starter: starter, Difficulty: c.Difficulty}); err != nil {
		return fmt.Errorf("send start: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case MsgError:
			fmt.Fprintf(c.out, "! %s\n", msg.Error)
			if c.last == nil {
				return fmt.Errorf("server: %s", msg.Error)
			}

		case MsgUpdate:
			c.renderLog(msg.Log)
			c.last = msg.State
			c.renderState(msg.State)

		case MsgGameOver:
			c.renderLog(msg.Log)
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          BATTLE OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}

		cmd := c.readCommand()
		if err := enc.Encode(cmd); err != nil {
			return fmt.Errorf("send %s: %w", cmd.Type, err)
		}
		if cmd.Type == MsgQuit {
			return nil
		}
	}
}

func (c *Client) chooseStarter(starters []StarterView) (string, bool) {
	if c.Starter != "" {
		return c.Starter, true
	}
	if len(starters) == 0 {
		return "", false
	}
	fmt.Fprintln(c.out, "Choose a starter:")
	for i, s := range starters {
		fmt.Fprintf(c.out, "  %d) %s (HP %d, %d cards)\n", i+1, s.Name, s.MaxHealth, s.DeckSize)
	}
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && n >= 1 && n <= len(starters) {
			return starters[n-1].ID, true
		}
		if err != nil {
			return "", false
		}
		fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", len(starters))
	}
}

// readCommand reads one command: a hand number plays that card, "e" ends the
// turn, "s" reprints the state, "q" quits. End of input quits.
func (c *Client) readCommand() ClientMessage {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		line = strings.ToLower(strings.TrimSpace(line))
		switch line {
		case "e", "end":
			return ClientMessage{Type: MsgEndTurn}
		case "s", "state":
			return ClientMessage{Type: MsgState}
		case "q", "quit":
			return ClientMessage{Type: MsgQuit}
		case "":
			if err != nil {
				return ClientMessage{Type: MsgQuit}
			}
			continue
		}
		if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 {
			return ClientMessage{Type: MsgPlay, Index: n - 1}
		}
		if err != nil {
			return ClientMessage{Type: MsgQuit}
		}
		fmt.Fprintln(c.out, "Enter a card number, e (end turn), s (state) or q (quit)")
	}
}

func (c *Client) renderLog(lines []string) {
	for _, l := range lines {
		fmt.Fprintf(c.out, "  %s\n", l)
	}
}

func (c *Client) renderState(sv *session.StateView) {
	if sv == nil {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")
	c.renderCombatant(sv.Opponent)
	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")
	c.renderCombatant(sv.You)
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Round %d | %s", sv.Round, sv.Difficulty)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintln(c.out, turnInfo)

	if len(sv.You.Hand) > 0 {
		fmt.Fprintln(c.out, "\nHand:")
		for _, cv := range sv.You.Hand {
			fmt.Fprintf(c.out, "  %d) %s\n", cv.Index+1, formatCard(cv))
		}
	}
}

func (c *Client) renderCombatant(v session.CombatantView) {
	fmt.Fprintf(c.out, "║  %s  HP %d/%d  Block %d  Energy %d/%d\n",
		v.Name, v.HP, v.MaxHP, v.Block, v.Energy, v.MaxEnergy)
	if len(v.Statuses) > 0 {
		parts := make([]string, 0, len(v.Statuses))
		for _, s := range v.Statuses {
			parts = append(parts, fmt.Sprintf("%s x%d (%d)", s.Type, s.Stacks, s.Duration))
		}
		fmt.Fprintf(c.out, "║  Statuses: %s\n", strings.Join(parts, ", "))
	}
	if len(v.Passives) > 0 {
		fmt.Fprintf(c.out, "║  Passives: %s\n", strings.Join(v.Passives, ", "))
	}
	fmt.Fprintf(c.out, "║  Hand: %d  Deck: %d  Discard: %d  Burned: %d\n",
		v.HandCount, v.DeckCount, v.DiscardCount, v.BurnedCount)
}

func formatCard(cv session.CardView) string {
	s := fmt.Sprintf("%s [%d]", cv.Name, cv.Cost)
	if cv.Attack > 0 {
		s += fmt.Sprintf(" ATK %d", cv.Attack)
	}
	if cv.Defense > 0 {
		s += fmt.Sprintf(" DEF %d", cv.Defense)
	}
	if cv.Description != "" {
		s += " - " + cv.Description
	}
	if !cv.Playable {
		s += " (unplayable)"
	}
	return s
}
