package console

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"project_opsDesk/internal/entities"
	"project_opsDesk/internal/usecases"
)

func badge(s entities.Status) string {
	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", s.Color(), s.Label())
}

func shortTime(t time.Time) string {
	return t.Format("02.01 15:04")
}

func renderList(out io.Writer, snap *usecases.ListSnapshot, filter entities.Status, search string) {
	fmt.Fprintln(out)
	header := "Dialogs"
	if filter != "" {
		header += " — " + filter.Label()
	}
	if search != "" {
		header += fmt.Sprintf(" — search %q", search)
	}
	fmt.Fprintln(out, header)

	if len(snap.Conversations) == 0 {
		fmt.Fprintln(out, "  no dialogs yet")
	} else {
		w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  ID\tCLIENT\tSTATUS\tCATEGORY\tCHANNEL\tUPDATED")
		for i := range snap.Conversations {
			conv := &snap.Conversations[i]
			channel := ""
			if conv.Client != nil {
				channel = conv.Client.Channel
			}
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%s\n",
				conv.ID, conv.DisplayName(), badge(conv.Status),
				conv.Category.Label(), channel, shortTime(conv.UpdatedAt))
		}
		w.Flush()
	}

	if snap.Stats != nil {
		fmt.Fprintf(out, "  today: %d total, %d need operator | all time: %d total, %d bot handled\n",
			snap.Stats.Today.Total, snap.Stats.Today.NeedsOperator,
			snap.Stats.Total.Total, snap.Stats.Total.BotCompleted)
	}
}

func renderDetail(out io.Writer, snap *usecases.DetailSnapshot) {
	conv := snap.Conversation
	fmt.Fprintf(out, "\nDialog #%d — %s [%s] %s\n",
		conv.ID, conv.DisplayName(), badge(conv.Status), conv.Category.Label())

	for i := range snap.Messages {
		msg := &snap.Messages[i]
		fmt.Fprintf(out, "  %s  %-8s  %s\n", shortTime(msg.CreatedAt), msg.Sender.Label(), msg.Text)
	}

	// Only advertise the actions the current status actually exposes
	actions := "back"
	if conv.Status.CanSendMessage() {
		actions = "send <text> | " + actions
	}
	if conv.Status.CanTakeover() {
		actions = "takeover | " + actions
	}
	if conv.Status.CanReturnToBot() {
		actions = "return | " + actions
	}
	if conv.Status.CanClose() {
		actions = "close | " + actions
	}
	fmt.Fprintf(out, "  actions: %s\n", actions)
}

func renderKnowledge(out io.Writer, entries []entities.KnowledgeEntry, search string) {
	fmt.Fprintln(out)
	if search != "" {
		fmt.Fprintf(out, "Knowledge base — search %q\n", search)
	} else {
		fmt.Fprintln(out, "Knowledge base")
	}

	if len(entries) == 0 {
		if search != "" {
			fmt.Fprintln(out, "  nothing found")
		} else {
			fmt.Fprintln(out, "  knowledge base is empty")
		}
		return
	}

	active := 0
	for i := range entries {
		e := &entries[i]
		state := "🟢"
		if !e.IsActive {
			state = "⚪"
		} else {
			active++
		}
		fmt.Fprintf(out, "  %s #%d Q: %s\n       A: %s\n", state, e.ID, e.Question, e.Answer)
		meta := fmt.Sprintf("used %d time(s)", e.TimesUsed)
		if e.AddedByName != "" {
			meta += ", added by " + e.AddedByName
		}
		fmt.Fprintf(out, "       %s\n", meta)
	}
	fmt.Fprintf(out, "  total: %d | active: %d\n", len(entries), active)
}
