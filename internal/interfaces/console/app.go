package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"project_opsDesk/internal/entities"
	"project_opsDesk/internal/infrastructure"
	"project_opsDesk/internal/usecases"
)

// WatcherPollInterval is how often the background watcher re-counts the
// dialogs waiting for an operator, independent of which view is open.
const WatcherPollInterval = 10 * time.Second

// App is the console shell: login flow, route guarding, the command loop
// and the page-independent notification watcher.
type App struct {
	auth      *usecases.AuthUsecase
	convs     *usecases.ConversationUsecase
	knowledge *usecases.KnowledgeUsecase
	watcher   *usecases.Watcher

	watcherPoller *infrastructure.Poller
	in            *bufio.Reader
	out           io.Writer

	// Flipped by the API client's 401 hook; the command loops poll it and
	// bail out to the login screen.
	sessionLost atomic.Bool
}

func NewApp(auth *usecases.AuthUsecase, convs *usecases.ConversationUsecase, knowledge *usecases.KnowledgeUsecase, watcher *usecases.Watcher, in io.Reader, out io.Writer) *App {
	return &App{
		auth:          auth,
		convs:         convs,
		knowledge:     knowledge,
		watcher:       watcher,
		watcherPoller: infrastructure.NewPoller(),
		in:            bufio.NewReader(in),
		out:           out,
	}
}

// ForceLogin is wired as the API client's OnUnauthorized hook. The token
// store is already cleared when it fires; this just routes the operator
// back to the login screen.
func (a *App) ForceLogin() {
	if !a.sessionLost.Swap(true) {
		fmt.Fprintln(a.out, "\n[SESSION] authorization expired, please log in again")
	}
}

// Run drives the whole console: login, guard, main loop, repeat until the
// operator quits.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "OpsDesk — operator console")

	for {
		a.sessionLost.Store(false)

		if !a.auth.HasSession() {
			if !a.runLogin(ctx) {
				return nil
			}
		}

		operator, ok := a.guard(ctx)
		if !ok {
			continue
		}
		fmt.Fprintf(a.out, "Logged in as %s <%s>\n", operator.Name, operator.Email)

		a.watcherPoller.Start(WatcherPollInterval, func() {
			a.watcher.Poll(ctx)
		})
		quit := a.runMain(ctx)
		a.watcherPoller.Stop()
		if quit {
			return nil
		}
	}
}

// guard validates the stored session before any protected view renders.
func (a *App) guard(ctx context.Context) (*entities.Operator, bool) {
	fmt.Fprintln(a.out, "Checking session...")
	operator, err := a.auth.Guard(ctx)
	if err != nil {
		switch err {
		case usecases.ErrNoSession:
			// Nothing stored, straight to login
		case usecases.ErrSessionExpired:
			fmt.Fprintln(a.out, "[SESSION] token expired")
		default:
			fmt.Fprintf(a.out, "[SESSION] validation failed: %v\n", err)
		}
		return nil, false
	}
	return operator, true
}

// runLogin loops until the operator logs in or closes stdin. A rejected
// login is shown inline; the (empty) session is not touched.
func (a *App) runLogin(ctx context.Context) bool {
	for {
		fmt.Fprint(a.out, "email: ")
		email, ok := a.readLine()
		if !ok {
			return false
		}
		fmt.Fprint(a.out, "password: ")
		password, ok := a.readLine()
		if !ok {
			return false
		}

		if err := a.auth.Login(ctx, email, password); err != nil {
			fmt.Fprintln(a.out, "Invalid email or password")
			continue
		}
		return true
	}
}

// runMain is the dialog-list page. Returns true when the operator quits
// the console, false when the session should be re-established.
func (a *App) runMain(ctx context.Context) bool {
	view := NewConversationsView(a.convs, a.out)
	if err := view.Open(ctx); err != nil {
		// The list is the default page, so there is nowhere safer to fall
		// back to. Stay here with an empty view and let the interval poll
		// retry while we wait for operator input.
		fmt.Fprintf(a.out, "[LIST] %v\n", err)
	}
	defer view.Close()

	fmt.Fprintln(a.out, "commands: open <id> | filter <status|all> | search [text] | refresh | kb | logout | quit")

	for {
		if a.sessionLost.Load() {
			return false
		}

		fmt.Fprint(a.out, "> ")
		line, ok := a.readLine()
		if !ok {
			return true
		}
		cmd, arg := splitCommand(line)

		switch cmd {
		case "":
			view.Render()
		case "refresh":
			view.Refresh(ctx)
		case "filter":
			filter := entities.Status(arg)
			if arg == "all" || arg == "" {
				filter = ""
			}
			if err := view.SetFilter(ctx, filter); err != nil {
				fmt.Fprintf(a.out, "%v (one of: %s)\n", err, statusList())
			}
		case "search":
			view.SetSearch(ctx, arg)
		case "open":
			id, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintln(a.out, "usage: open <id>")
				continue
			}
			if quit := a.runChat(ctx, id); quit {
				return true
			}
			view.Render()
		case "kb":
			if quit := a.runKnowledge(ctx); quit {
				return true
			}
			view.Render()
		case "logout":
			a.auth.Logout()
			fmt.Fprintln(a.out, "Logged out")
			return false
		case "quit", "exit":
			return true
		case "help":
			fmt.Fprintln(a.out, "commands: open <id> | filter <status|all> | search [text] | refresh | kb | logout | quit")
		default:
			fmt.Fprintf(a.out, "unknown command %q (try help)\n", cmd)
		}
	}
}

// runChat is one open dialog. Returns true only when the operator quits
// the console from inside the chat.
func (a *App) runChat(ctx context.Context, id int) bool {
	view := NewChatView(a.convs, a.out)
	if err := view.Open(ctx, id); err != nil {
		// Initial load failure sends the operator back to the list
		fmt.Fprintf(a.out, "[CHAT] %v — back to dialogs\n", err)
		return false
	}
	defer view.Close()

	for {
		if a.sessionLost.Load() {
			return false
		}

		fmt.Fprintf(a.out, "dialog %d> ", id)
		line, ok := a.readLine()
		if !ok {
			return true
		}
		cmd, arg := splitCommand(line)

		var err error
		switch cmd {
		case "":
			view.Render()
		case "send":
			err = view.Send(ctx, truncateInput(arg, MaxMessageLength))
		case "takeover":
			err = view.Takeover(ctx)
		case "return":
			err = view.ReturnToBot(ctx)
		case "close":
			err = view.CloseDialog(ctx)
		case "back":
			return false
		case "quit", "exit":
			return true
		default:
			fmt.Fprintf(a.out, "unknown command %q (send <text> | takeover | return | close | back)\n", cmd)
		}
		if err != nil {
			fmt.Fprintf(a.out, "[CHAT] %v\n", err)
		}
	}
}

// runKnowledge is the knowledge-base page.
func (a *App) runKnowledge(ctx context.Context) bool {
	view := NewKnowledgeView(a.knowledge, a.out)
	if err := view.Open(ctx); err != nil {
		fmt.Fprintf(a.out, "[KB] %v — back to dialogs\n", err)
		return false
	}

	for {
		if a.sessionLost.Load() {
			return false
		}

		fmt.Fprint(a.out, "kb> ")
		line, ok := a.readLine()
		if !ok {
			return true
		}
		cmd, arg := splitCommand(line)

		var err error
		switch cmd {
		case "", "list":
			err = view.SetSearch(ctx, "")
		case "search":
			err = view.SetSearch(ctx, arg)
		case "add":
			question, answer, ok := a.promptPair("", "")
			if !ok {
				return true
			}
			err = view.Add(ctx, question, answer)
		case "edit":
			var id int
			if id, err = strconv.Atoi(arg); err != nil {
				fmt.Fprintln(a.out, "usage: edit <id>")
				err = nil
				continue
			}
			entry := view.find(id)
			if entry == nil {
				fmt.Fprintf(a.out, "no entry #%d\n", id)
				continue
			}
			question, answer, ok := a.promptPair(entry.Question, entry.Answer)
			if !ok {
				return true
			}
			err = view.Edit(ctx, id, question, answer)
		case "toggle":
			var id int
			if id, err = strconv.Atoi(arg); err != nil {
				fmt.Fprintln(a.out, "usage: toggle <id>")
				err = nil
				continue
			}
			err = view.Toggle(ctx, id)
		case "del":
			var id int
			if id, err = strconv.Atoi(arg); err != nil {
				fmt.Fprintln(a.out, "usage: del <id>")
				err = nil
				continue
			}
			err = view.Delete(ctx, id)
		case "back":
			return false
		case "quit", "exit":
			return true
		default:
			fmt.Fprintf(a.out, "unknown command %q (add | edit <id> | toggle <id> | del <id> | search [text] | back)\n", cmd)
		}
		if err != nil {
			fmt.Fprintf(a.out, "[KB] %v\n", err)
		}
	}
}

// promptPair asks for a question/answer pair, keeping the previous value
// when the operator just presses enter.
func (a *App) promptPair(prevQuestion, prevAnswer string) (string, string, bool) {
	fmt.Fprintf(a.out, "client question [%s]: ", prevQuestion)
	question, ok := a.readLine()
	if !ok {
		return "", "", false
	}
	if question == "" {
		question = prevQuestion
	}

	fmt.Fprintf(a.out, "bot answer [%s]: ", prevAnswer)
	answer, ok := a.readLine()
	if !ok {
		return "", "", false
	}
	if answer == "" {
		answer = prevAnswer
	}
	return truncateInput(question, MaxQuestionLength), truncateInput(answer, MaxAnswerLength), true
}

func (a *App) readLine() (string, bool) {
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(sanitizeInput(line)), true
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	cmd := strings.ToLower(strings.TrimSpace(parts[0]))
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}

func statusList() string {
	names := make([]string, 0, len(entities.AllStatuses))
	for _, s := range entities.AllStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
