package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/aihubacademy/backend/libs/config"
	"github.com/aihubacademy/backend/libs/logger"
	"github.com/aihubacademy/backend/services/portal-client/internal/content"
	"github.com/aihubacademy/backend/services/portal-client/internal/portal"
	"github.com/aihubacademy/backend/services/portal-client/internal/quiz"
	"github.com/aihubacademy/backend/services/portal-client/internal/storage"
	"golang.org/x/term"
)

func main() {
	// Load configuration
	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	store := storage.NewFileStore(cfg.Client.StoragePath, logger.Logger)
	p := portal.New(ctx, store, cfg.Client.APIBaseURL, logger.Logger)

	fmt.Println("AI Hub Academy")
	if cfg.Client.APIBaseURL == "" {
		fmt.Println("Running in local-only mode (set PORTAL_API_URL to sync progress).")
	}
	if user := p.CurrentUser(); user != nil {
		fmt.Printf("Welcome back, %s.\n", user.Name)
	}
	fmt.Println(`Type "help" for commands.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			printHelp()
		case "register":
			register(ctx, p, scanner)
		case "login":
			login(ctx, p, scanner)
		case "logout":
			p.Logout(ctx)
			fmt.Println("Logged out.")
		case "whoami":
			whoami(p)
		case "tutorials":
			listTutorials(p)
		case "read":
			readTutorial(ctx, p, fields)
		case "quiz":
			runQuiz(ctx, p, scanner, fields)
		case "progress":
			showProgress(p)
		case "exit", "quit":
			return
		default:
			fmt.Printf("Unknown command %q. Type \"help\" for commands.\n", fields[0])
		}
	}
}

func printHelp() {
	fmt.Println(`Commands:
  register          create an account
  login             log in (demo: demo@aihub.dev / demo123)
  logout            log out
  whoami            show the current user
  tutorials         list the tutorial catalog
  read <id>         open a tutorial
  quiz <id>         take a tutorial's quiz
  progress          show completion progress
  exit              quit`)
}

// readPassword prompts for a password without echoing it
func readPassword(prompt string) string {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(raw)
}

// readLine prompts for a single line of input
func readLine(scanner *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func register(ctx context.Context, p *portal.Portal, scanner *bufio.Scanner) {
	email := readLine(scanner, "Email: ")
	name := readLine(scanner, "Name: ")
	password := readPassword("Password: ")

	user, err := p.Register(ctx, email, password, name)
	if err != nil {
		fmt.Printf("Registration failed: %v\n", err)
		return
	}
	fmt.Printf("Account created for %s. You can log in now.\n", user.Email)
}

func login(ctx context.Context, p *portal.Portal, scanner *bufio.Scanner) {
	email := readLine(scanner, "Email: ")
	password := readPassword("Password: ")

	user, err := p.Login(ctx, email, password)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}
	fmt.Printf("Welcome, %s.\n", user.Name)
}

func whoami(p *portal.Portal) {
	user := p.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in (progress is tracked locally).")
		return
	}
	fmt.Printf("%s <%s> role=%s", user.Name, user.Email, user.Role)
	if user.IsDemo {
		fmt.Print(" (demo account)")
	}
	fmt.Println()
}

func listTutorials(p *portal.Portal) {
	for _, t := range content.Tutorials() {
		marker := " "
		if p.IsCompleted(t.ID) {
			marker = "x"
		}
		fmt.Printf("[%s] %d. %s - %s\n", marker, t.ID, t.Title, t.Description)
	}
}

// parseTutorialID extracts the tutorial ID argument of a command
func parseTutorialID(fields []string) (int, bool) {
	if len(fields) < 2 {
		fmt.Println("Usage:", fields[0], "<tutorial id>")
		return 0, false
	}

	id, err := strconv.Atoi(fields[1])
	if err != nil {
		fmt.Println("Tutorial ID must be a number.")
		return 0, false
	}
	return id, true
}

func readTutorial(ctx context.Context, p *portal.Portal, fields []string) {
	id, ok := parseTutorialID(fields)
	if !ok {
		return
	}

	tutorial, ok := content.TutorialByID(id)
	if !ok {
		fmt.Println("No such tutorial.")
		return
	}

	p.MarkTutorialVisited(ctx, tutorial.ID)
	fmt.Printf("%d. %s\n\n%s\n", tutorial.ID, tutorial.Title, tutorial.Description)
	if content.QuizFor(tutorial.ID) != nil {
		fmt.Printf("\nRun \"quiz %d\" to complete this tutorial.\n", tutorial.ID)
	}
}

func runQuiz(ctx context.Context, p *portal.Portal, scanner *bufio.Scanner, fields []string) {
	id, ok := parseTutorialID(fields)
	if !ok {
		return
	}

	tutorial, ok := content.TutorialByID(id)
	if !ok {
		fmt.Println("No such tutorial.")
		return
	}

	questions := content.QuizFor(tutorial.ID)
	if questions == nil {
		fmt.Println("This tutorial has no quiz yet.")
		return
	}

	engine := p.StartQuiz(ctx, tutorial.ID, questions)
	for !engine.Finished() {
		question := engine.Current()
		fmt.Printf("\nQuestion %d of %d: %s\n", engine.QuestionIndex()+1, engine.Len(), question.Text)
		for i, option := range question.Options {
			fmt.Printf("  %d) %s\n", i+1, option)
		}

		answer := readLine(scanner, "Your answer: ")
		option, err := strconv.Atoi(answer)
		if err != nil || option < 1 || option > len(question.Options) {
			fmt.Println("Pick an option by number.")
			continue
		}

		engine.SelectOption(option - 1)
		correct, ok := engine.SubmitAnswer()
		if !ok {
			continue
		}
		if correct {
			fmt.Println("Correct!")
		} else {
			fmt.Printf("Incorrect. %s\n", question.Explanation)
		}
		engine.Next()
	}

	fmt.Printf("\nScore: %d / %d (pass mark %d)\n", engine.Score(), engine.Len(), quiz.PassThreshold(engine.Len()))
	if engine.Passed() {
		fmt.Println("Passed! Tutorial marked as completed.")
	} else {
		fmt.Println("Not passed. Review the tutorial and try again.")
	}
}

func showProgress(p *portal.Portal) {
	total := len(content.Tutorials())
	completed := p.CompletedTutorials()
	fmt.Printf("Completed %d of %d tutorials (%d%%).\n", len(completed), total, p.ProgressPercentage(total))
	if last, ok := p.LastVisited(); ok {
		if tutorial, found := content.TutorialByID(last); found {
			fmt.Printf("Last visited: %d. %s\n", tutorial.ID, tutorial.Title)
		}
	}
}
