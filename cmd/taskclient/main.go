package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"taskClient/internal/app"
	"taskClient/internal/config"
	"taskClient/internal/models/task"
	"taskClient/internal/view"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const usage = `Usage: taskclient [--config path] <command> [flags]

Commands:
  register   create an account and log in
  login      log in with username and password
  logout     forget the stored session
  whoami     print the logged in user
  profile    show or edit the profile (--username, --avatar)
  list       show your tasks
  add        add a task (--title, --description)
  toggle     flip completion of a task: toggle <id>
  edit       edit a task: edit <id> [--title] [--description]
  rm         delete a task: rm <id> [--yes]
  watch      show tasks with a live clock (--ticks n)
`

var errLoginRequired = errors.New("not logged in, run `taskclient login` or `taskclient register`")

type command func(ctx context.Context, c *cli, args []string) error

var commands = map[string]command{
	"register": runRegister,
	"login":    runLogin,
	"logout":   runLogout,
	"whoami":   runWhoami,
	"profile":  runProfile,
	"list":     runList,
	"add":      runAdd,
	"toggle":   runToggle,
	"edit":     runEdit,
	"rm":       runDelete,
	"watch":    runWatch,
}

type cli struct {
	app    *app.App
	stdin  io.Reader
	in     *bufio.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("taskclient", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", config.DefaultPath, "path to config file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fs.Usage()
		return fmt.Errorf("unknown command %q", name)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg)
	if err := a.Init(ctx); err != nil {
		return err
	}
	defer a.Shutdown()

	return cmd(ctx, &cli{
		app:    a,
		stdin:  stdin,
		in:     bufio.NewReader(stdin),
		stdout: stdout,
		stderr: stderr,
	}, rest)
}

func (c *cli) flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// require пропускает команду только если охранник не уводит на экран входа
func (c *cli) require(ctx context.Context, route view.Route) error {
	if c.app.Guard().Resolve(ctx, route) != route {
		return errLoginRequired
	}
	return nil
}

func (c *cli) prompt(label string) (string, error) {
	fmt.Fprint(c.stdout, label)
	line, err := c.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *cli) readPassword(label string) (string, error) {
	fmt.Fprint(c.stdout, label)
	if f, ok := c.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.stdout)
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	line, err := c.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *cli) credentials(fs *pflag.FlagSet, username, password *string) error {
	var err error
	if *username == "" {
		if *username, err = c.prompt("Username: "); err != nil {
			return err
		}
	}
	if !fs.Changed("password") {
		if *password, err = c.readPassword("Password: "); err != nil {
			return err
		}
	}
	return nil
}

func runRegister(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("register")
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.credentials(fs, username, password); err != nil {
		return err
	}

	v := c.app.RegisterView()
	v.Username, v.Password = *username, *password
	v.ConfirmPassword = *password
	if !fs.Changed("password") {
		confirm, err := c.readPassword("Confirm password: ")
		if err != nil {
			return err
		}
		v.ConfirmPassword = confirm
	}

	if _, ok := v.Submit(ctx); !ok {
		return errors.New(v.Error)
	}
	fmt.Fprintf(c.stdout, "Registered and logged in as %s\n", v.Username)
	return nil
}

func runLogin(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("login")
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.credentials(fs, username, password); err != nil {
		return err
	}

	v := c.app.LoginView()
	v.Username, v.Password = *username, *password
	if _, ok := v.Submit(ctx); !ok {
		return errors.New(v.Error)
	}
	fmt.Fprintf(c.stdout, "Logged in as %s\n", v.Username)
	return nil
}

func runLogout(ctx context.Context, c *cli, _ []string) error {
	if err := c.app.Auth().Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "Logged out")
	return nil
}

func runWhoami(ctx context.Context, c *cli, _ []string) error {
	name, ok := c.app.Session().CurrentUsername(ctx)
	if !ok {
		return errLoginRequired
	}
	fmt.Fprintln(c.stdout, name)
	return nil
}

func runProfile(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("profile")
	username := fs.String("username", "", "new username")
	avatar := fs.String("avatar", "", "new avatar url")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.require(ctx, view.RouteProfile); err != nil {
		return err
	}

	v := c.app.ProfileView()
	if err := v.Load(ctx); err != nil {
		return errors.New(v.Error)
	}

	if fs.Changed("username") || fs.Changed("avatar") {
		if fs.Changed("username") {
			v.Draft.Username = *username
		}
		if fs.Changed("avatar") {
			v.Draft.AvatarURL = *avatar
		}
		if err := v.Save(ctx); err != nil {
			return errors.New(v.Error)
		}
		fmt.Fprintln(c.stdout, v.Success)
	}

	fmt.Fprintf(c.stdout, "Username: %s\nAvatar:   %s\n", v.Draft.Username, v.Draft.AvatarURL)
	return nil
}

// listView открывает экран задач с аватаром и загруженным списком
func (c *cli) listView(ctx context.Context) (*view.TaskListView, error) {
	if err := c.require(ctx, view.RouteTasks); err != nil {
		return nil, err
	}
	c.app.SeedAvatar(ctx)

	v, err := c.app.TaskListView()
	if err != nil {
		return nil, err
	}
	if err := v.Load(ctx); err != nil {
		return nil, failed(v, err)
	}
	return v, nil
}

// failed отдаёт текст, который экран показал бы пользователю
func failed(v *view.TaskListView, err error) error {
	if v.Error != "" {
		return errors.New(v.Error)
	}
	return err
}

func parseTaskID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New("missing task id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", args[0])
	}
	return id, nil
}

func runList(ctx context.Context, c *cli, _ []string) error {
	v, err := c.listView(ctx)
	if err != nil {
		return err
	}
	return v.Render(c.stdout)
}

func runAdd(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("add")
	title := fs.String("title", "", "task title")
	description := fs.String("description", "", "task description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" && fs.NArg() > 0 {
		*title = strings.Join(fs.Args(), " ")
	}

	v, err := c.listView(ctx)
	if err != nil {
		return err
	}
	v.NewTitle, v.NewDescription = *title, *description
	if err := v.Create(ctx); err != nil {
		return failed(v, err)
	}
	return v.Render(c.stdout)
}

func runToggle(ctx context.Context, c *cli, args []string) error {
	id, err := parseTaskID(args)
	if err != nil {
		return err
	}
	v, err := c.listView(ctx)
	if err != nil {
		return err
	}
	if err := v.Toggle(ctx, id); err != nil {
		return failed(v, err)
	}
	return v.Render(c.stdout)
}

func runEdit(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("edit")
	title := fs.String("title", "", "new title")
	description := fs.String("description", "", "new description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseTaskID(fs.Args())
	if err != nil {
		return err
	}

	v, err := c.listView(ctx)
	if err != nil {
		return err
	}
	if err := v.StartEdit(id); err != nil {
		return err
	}

	var options []task.TaskOption
	if fs.Changed("title") {
		options = append(options, task.WithTitle(*title))
	}
	if fs.Changed("description") {
		options = append(options, task.WithDescription(*description))
	}
	if len(options) == 0 {
		v.CancelEdit()
		return errors.New("nothing to change, pass --title or --description")
	}
	v.ChangeDraft(options...)

	if err := v.SaveEdit(ctx); err != nil {
		return failed(v, err)
	}
	return v.Render(c.stdout)
}

func runDelete(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("rm")
	yes := fs.BoolP("yes", "y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseTaskID(fs.Args())
	if err != nil {
		return err
	}

	v, err := c.listView(ctx)
	if err != nil {
		return err
	}

	if !*yes {
		answer, err := c.prompt(fmt.Sprintf("Delete task %d? [y/N]: ", id))
		if err != nil {
			return err
		}
		if a := strings.ToLower(answer); a != "y" && a != "yes" {
			fmt.Fprintln(c.stdout, "Cancelled")
			return nil
		}
	}

	if err := v.Delete(ctx, id); err != nil {
		return failed(v, err)
	}
	fmt.Fprintf(c.stdout, "Deleted task %d\n", id)
	return v.Render(c.stdout)
}

func runWatch(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("watch")
	ticks := fs.Int("ticks", 0, "stop after n clock ticks, 0 runs until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v, err := c.listView(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seen := 0
	clock, err := c.app.Clock(func(now string) {
		v.SetClock(now)
		fmt.Fprintln(c.stdout)
		if err := v.Render(c.stdout); err != nil {
			fmt.Fprintf(c.stderr, "render: %v\n", err)
		}
		seen++
		if *ticks > 0 && seen >= *ticks {
			cancel()
		}
	})
	if err != nil {
		return err
	}

	clock.Start(ctx)
	return nil
}
