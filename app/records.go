package app

import (
	"slices"
	"strings"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/momentum/internal/apperr"
	"github.com/ayoisaiah/momentum/internal/config"
	"github.com/ayoisaiah/momentum/internal/models"
	"github.com/ayoisaiah/momentum/internal/timeutil"
	"github.com/ayoisaiah/momentum/internal/ui"
)

const (
	shortIDLength  = 8
	minPrefixChars = 4
)

var (
	errMissingRef = &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: "specify the %s by id, id prefix or name",
	}

	errNoMatch = &apperr.Error{
		Kind:    apperr.KindNotFound,
		Message: "no %s matches %q",
	}

	errAmbiguousRef = &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: "%q matches more than one %s, use a longer id prefix",
	}
)

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}

	return id[:shortIDLength]
}

// resolve finds the single record that ref names. An exact id wins, then an
// id prefix of at least minPrefixChars, then a case-insensitive name.
func resolve[T any](kind, ref string, items []T, id, name func(T) string) (T, error) {
	var zero T

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, errMissingRef.Fmt(kind)
	}

	for _, it := range items {
		if id(it) == ref {
			return it, nil
		}
	}

	var matches []T

	if len(ref) >= minPrefixChars {
		for _, it := range items {
			if strings.HasPrefix(id(it), ref) {
				matches = append(matches, it)
			}
		}
	}

	if len(matches) == 0 {
		for _, it := range items {
			if strings.EqualFold(name(it), ref) {
				matches = append(matches, it)
			}
		}
	}

	switch len(matches) {
	case 0:
		return zero, errNoMatch.Fmt(kind, ref)
	case 1:
		return matches[0], nil
	}

	return zero, errAmbiguousRef.Fmt(ref, kind)
}

func taskID(t models.Task) string     { return t.ID }
func taskTitle(t models.Task) string  { return t.Title }
func habitID(h models.Habit) string   { return h.ID }
func habitName(h models.Habit) string { return h.Name }

// sortTasks orders open tasks before completed ones, then by title in
// natural order.
func sortTasks(tasks []models.Task) {
	slices.SortStableFunc(tasks, func(a, b models.Task) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}

			return -1
		}

		return naturalCompare(a.Title, b.Title)
	})
}

// sortHabits orders active habits before archived ones, then by name in
// natural order.
func sortHabits(habits []models.Habit) {
	slices.SortStableFunc(habits, func(a, b models.Habit) int {
		if a.Archived != b.Archived {
			if a.Archived {
				return 1
			}

			return -1
		}

		return naturalCompare(a.Name, b.Name)
	})
}

func naturalCompare(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}

	return 0
}

func taskAddAction(ctx *cli.Context, e *env) error {
	task, err := models.NewTask(e.user(), strings.Join(ctx.Args().Slice(), " "), e.sessions().Now())
	if err != nil {
		return err
	}

	if err := e.db.AddTask(ctx.Context, task); err != nil {
		return err
	}

	if ok, err := printStructured(ctx, task); ok || err != nil {
		return err
	}

	pterm.Success.Printfln("Added task %s (%s)", task.Title, shortID(task.ID))

	return nil
}

func taskDoneAction(ctx *cli.Context, e *env) error {
	tasks, err := e.db.ListTasks(ctx.Context, e.user())
	if err != nil {
		return err
	}

	task, err := resolve("task", strings.Join(ctx.Args().Slice(), " "), tasks, taskID, taskTitle)
	if err != nil {
		return err
	}

	done, err := e.db.CompleteTask(ctx.Context, e.user(), task.ID, e.sessions().Now())
	if err != nil {
		return err
	}

	if ok, err := printStructured(ctx, done); ok || err != nil {
		return err
	}

	pterm.Success.Printfln("Completed task %s", done.Title)

	return nil
}

func taskListAction(ctx *cli.Context, e *env) error {
	tasks, err := e.db.ListTasks(ctx.Context, e.user())
	if err != nil {
		return err
	}

	if !ctx.Bool("all") {
		tasks = slices.DeleteFunc(tasks, func(t models.Task) bool {
			return t.Completed
		})
	}

	sortTasks(tasks)

	if tasks == nil {
		tasks = []models.Task{}
	}

	if ok, err := printStructured(ctx, tasks); ok || err != nil {
		return err
	}

	if len(tasks) == 0 {
		pterm.Info.Println("No tasks found. Add one with 'momentum task add'")
		return nil
	}

	ui.PrintTable(taskRows(tasks, e.cfg.TimeFormat()), config.Stdout)

	return nil
}

func taskRows(tasks []models.Task, timeFormat string) [][]string {
	rows := [][]string{{"ID", "TITLE", "CREATED", "STATUS"}}

	for i := range tasks {
		t := tasks[i]

		status := ui.Cyan("open")
		if t.Completed {
			status = ui.Green("done")
		}

		rows = append(rows, []string{
			shortID(t.ID),
			t.Title,
			t.CreatedAt.Local().Format("Jan 02, 2006 " + timeFormat),
			status,
		})
	}

	return rows
}

func habitAddAction(ctx *cli.Context, e *env) error {
	habit, err := models.NewHabit(e.user(), strings.Join(ctx.Args().Slice(), " "), e.sessions().Now())
	if err != nil {
		return err
	}

	if err := e.db.AddHabit(ctx.Context, habit); err != nil {
		return err
	}

	if ok, err := printStructured(ctx, habit); ok || err != nil {
		return err
	}

	pterm.Success.Printfln("Added habit %s (%s)", habit.Name, shortID(habit.ID))

	return nil
}

// findHabit resolves the habit named by the command arguments.
func findHabit(ctx *cli.Context, e *env, includeArchived bool) (models.Habit, error) {
	habits, err := e.db.ListHabits(ctx.Context, e.user(), includeArchived)
	if err != nil {
		return models.Habit{}, err
	}

	return resolve("habit", strings.Join(ctx.Args().Slice(), " "), habits, habitID, habitName)
}

func habitCheckAction(ctx *cli.Context, e *env) error {
	date, err := timeutil.FromStr(ctx.String("date"), e.sessions().Now())
	if err != nil {
		return err
	}

	// Archived habits are resolved too so the store can report them.
	habit, err := findHabit(ctx, e, true)
	if err != nil {
		return err
	}

	done, err := e.db.CheckHabit(ctx.Context, e.user(), habit.ID, date)
	if err != nil {
		return err
	}

	if ok, err := printStructured(ctx, done); ok || err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Checked %s for %s",
		habit.Name,
		timeutil.ToDayKey(done.Date),
	)

	return nil
}

func habitArchiveAction(ctx *cli.Context, e *env) error {
	habit, err := findHabit(ctx, e, false)
	if err != nil {
		return err
	}

	if err := e.db.ArchiveHabit(ctx.Context, e.user(), habit.ID); err != nil {
		return err
	}

	pterm.Success.Printfln("Archived habit %s", habit.Name)

	return nil
}

func habitListAction(ctx *cli.Context, e *env) error {
	habits, err := e.db.ListHabits(ctx.Context, e.user(), ctx.Bool("all"))
	if err != nil {
		return err
	}

	sortHabits(habits)

	if habits == nil {
		habits = []models.Habit{}
	}

	if ok, err := printStructured(ctx, habits); ok || err != nil {
		return err
	}

	if len(habits) == 0 {
		pterm.Info.Println("No habits found. Add one with 'momentum habit add'")
		return nil
	}

	rows := [][]string{{"ID", "NAME", "SINCE", "STATUS"}}

	for _, h := range habits {
		status := ui.Green("active")
		if h.Archived {
			status = ui.Red("archived")
		}

		rows = append(rows, []string{
			shortID(h.ID),
			h.Name,
			string(timeutil.ToDayKey(h.CreatedAt)),
			status,
		})
	}

	ui.PrintTable(rows, config.Stdout)

	return nil
}
