package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/peterh/liner"

	"github.com/eagleai/eaglechat/internal/adapter/apiclient"
	"github.com/eagleai/eaglechat/internal/adapter/pebble"
	"github.com/eagleai/eaglechat/internal/config"
	"github.com/eagleai/eaglechat/internal/domain/chat"
	"github.com/eagleai/eaglechat/internal/render"
	"github.com/eagleai/eaglechat/internal/service"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Keep structured logs off the conversation transcript.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	store, err := pebble.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	client := apiclient.NewClient(cfg.Client.ServerURL, cfg.Gateway.Timeout)
	svc := service.NewConversationService(store, client, cfg.Gateway.DefaultModel)

	ctx := context.Background()
	if err := svc.Load(ctx); err != nil {
		return fmt.Errorf("load conversations: %w", err)
	}

	app := &app{
		svc:      svc,
		client:   client,
		markdown: render.NewMarkdown(80),
		selected: cfg.Gateway.DefaultModel,
	}

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	historyFile := filepath.Join(filepath.Dir(cfg.Store.Path), "history")
	loadHistory(line, historyFile)
	defer func() {
		saveHistory(line, historyFile)
		line.Close()
	}()

	app.fetchModels(ctx)
	app.printWelcome()

	for {
		input, err := line.Prompt(promptStyle.Render("you ❯ "))
		if err == liner.ErrPromptAborted {
			fmt.Println(infoStyle.Render("(use /quit to exit)"))
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(trimmed, "/") {
			if quit := app.dispatch(ctx, trimmed); quit {
				return nil
			}
			continue
		}

		app.send(ctx, trimmed)
	}
}

// app holds the interactive session state around the conversation service.
type app struct {
	svc      *service.ConversationService
	client   *apiclient.Client
	markdown *render.Markdown
	models   []chat.ModelInfo
	selected string
}

func (a *app) fetchModels(ctx context.Context) {
	models, err := a.client.Models(ctx)
	if err != nil {
		fmt.Println(warnStyle.Render("could not fetch model list: " + err.Error()))
		return
	}
	a.models = models
}

func (a *app) printWelcome() {
	fmt.Println(titleStyle.Render("EagleChat"))
	if active := a.svc.Active(); active != nil {
		fmt.Println(infoStyle.Render("continuing: " + active.Title))
	}
	fmt.Println(infoStyle.Render("type a message, or /help for commands"))
	fmt.Println()
}

// dispatch handles slash commands. It returns true when the session should end.
func (a *app) dispatch(ctx context.Context, input string) bool {
	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		a.printHelp()
	case "/new":
		conv := a.svc.NewConversation(ctx)
		fmt.Println(infoStyle.Render("started " + conv.Title))
	case "/list":
		a.printConversations()
	case "/switch":
		a.switchConversation(ctx, arg)
	case "/model":
		a.modelCommand(arg)
	case "/models":
		a.printModels()
	case "/history":
		a.printHistory()
	default:
		fmt.Println(warnStyle.Render("unknown command " + cmd + " (try /help)"))
	}
	return false
}

func (a *app) printHelp() {
	help := [][2]string{
		{"/new", "start a new conversation"},
		{"/list", "list conversations"},
		{"/switch <n>", "switch to conversation n from /list"},
		{"/model [name]", "show or choose the model for the next new conversation"},
		{"/models", "list available models"},
		{"/history", "replay the current conversation"},
		{"/quit", "save and exit"},
	}
	for _, h := range help {
		fmt.Printf("  %s  %s\n", commandStyle.Render(fmt.Sprintf("%-14s", h[0])), h[1])
	}
}

func (a *app) printConversations() {
	convs := a.svc.Conversations()
	active := a.svc.Active()
	for i, c := range convs {
		marker := "  "
		if active != nil && c.ID == active.ID {
			marker = commandStyle.Render("* ")
		}
		model := "unset"
		if c.Model.IsSet() {
			model = c.Model.ID()
		}
		fmt.Printf("%s%2d. %s %s\n", marker, i+1, c.Title,
			infoStyle.Render(fmt.Sprintf("(%d messages, %s)", len(c.Messages), model)))
	}
}

func (a *app) switchConversation(ctx context.Context, arg string) {
	n, err := strconv.Atoi(arg)
	convs := a.svc.Conversations()
	if err != nil || n < 1 || n > len(convs) {
		fmt.Println(warnStyle.Render("usage: /switch <n> (see /list)"))
		return
	}
	target := convs[n-1]
	if err := a.svc.Switch(ctx, target.ID); err != nil {
		fmt.Println(warnStyle.Render("switch failed: " + err.Error()))
		return
	}
	fmt.Println(infoStyle.Render("switched to " + target.Title))
}

func (a *app) modelCommand(arg string) {
	active := a.svc.Active()
	if arg == "" {
		if active != nil && active.Model.IsSet() {
			fmt.Println(infoStyle.Render("conversation model: " + active.Model.ID() + " (locked)"))
		} else {
			fmt.Println(infoStyle.Render("next conversation model: " + a.selected))
		}
		return
	}
	if active != nil && active.Model.IsSet() && !active.Empty() {
		fmt.Println(warnStyle.Render("this conversation is locked to " + active.Model.ID() +
			"; use /new to chat with a different model"))
		return
	}
	a.selected = arg
	fmt.Println(infoStyle.Render("model set to " + arg))
}

func (a *app) printModels() {
	if len(a.models) == 0 {
		fmt.Println(infoStyle.Render("no model list available"))
		return
	}
	for _, m := range a.models {
		line := "  " + commandStyle.Render(m.ID)
		if m.Description != "" {
			line += "  " + infoStyle.Render(m.Description)
		}
		fmt.Println(line)
	}
}

func (a *app) printHistory() {
	active := a.svc.Active()
	if active == nil || active.Empty() {
		fmt.Println(infoStyle.Render("no messages yet"))
		return
	}
	for _, msg := range active.Messages {
		switch msg.Role {
		case chat.RoleUser:
			fmt.Println(promptStyle.Render("you:"), msg.Content)
		default:
			fmt.Println(titleStyle.Render("assistant:"))
			fmt.Print(a.markdown.Render(msg.Content))
		}
	}
}

func (a *app) send(ctx context.Context, text string) {
	fmt.Println(infoStyle.Render("thinking..."))
	reply, err := a.svc.Send(ctx, text, a.selected)
	switch {
	case errors.Is(err, chat.ErrBusy):
		fmt.Println(warnStyle.Render("still waiting on the previous reply for this conversation"))
		return
	case errors.Is(err, chat.ErrEmptyMessage):
		return
	case err != nil:
		fmt.Println(warnStyle.Render("send failed: " + err.Error()))
		return
	}
	fmt.Print(a.markdown.Render(reply.Content))
}

func loadHistory(line *liner.State, path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = line.ReadHistory(f)
}

func saveHistory(line *liner.State, path string) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = line.WriteHistory(f)
}
