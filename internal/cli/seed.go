package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"notodo/internal/auth"
	"notodo/internal/models"
	"notodo/internal/service"
)

var sampleNotes = []string{
	"Had a productive morning meeting",
	"Finished the quarterly report",
	"Reviewed pull requests",
	"Standup notes: discussed blockers",
	"Brainstormed new feature ideas",
	"Deployed new version to staging",
	"Customer feedback review",
	"Sprint planning completed",
	"Researched new technologies",
	"Weekly sync with stakeholders",
}

var sampleTasks = []struct {
	title    string
	priority models.Priority
	category string
}{
	{"Renew passport", models.PriorityHigh, "Personal"},
	{"Prepare sprint demo", models.PriorityHigh, "Work"},
	{"Book dentist appointment", models.PriorityMedium, "Personal"},
	{"Write weekly report", models.PriorityMedium, "Work"},
	{"Clean up the garage", models.PriorityLow, ""},
	{"Read a chapter of a book", models.PriorityLow, ""},
	{"Review open pull requests", models.PriorityMedium, "Work"},
	{"Plan weekend hike", models.PriorityLow, "Personal"},
}

var sampleCategories = []service.CategoryInput{
	{Name: "Work", Color: "bg-blue-500"},
	{Name: "Personal", Color: "bg-emerald-500"},
}

type seedOptions struct {
	name     string
	email    string
	password string
	seed     uint64
}

type seedSummary struct {
	User       models.PublicUser
	Categories int
	Tasks      int
	Notes      int
}

func newSeedCmd(load loader) *cobra.Command {
	opts := seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo account with sample tasks, notes and categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s, err := openStore(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer s.Close()

			svc := service.New(s, service.Options{Issuer: auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)})
			sum, err := seed(ctx, svc, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s (%s): %d categories, %d tasks, %d notes\n",
				sum.User.Name, sum.User.Email, sum.Categories, sum.Tasks, sum.Notes)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.name, "name", "Demo User", "Demo account name")
	cmd.Flags().StringVar(&opts.email, "email", "demo@notodo.com", "Demo account email")
	cmd.Flags().StringVar(&opts.password, "password", "demo1234", "Demo account password")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	return cmd
}

// seed fills a demo account. An existing account with the same email is reused
// when the password matches.
func seed(ctx context.Context, svc *service.Services, opts seedOptions) (seedSummary, error) {
	if opts.seed == 0 {
		opts.seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed>>1))

	_, err := svc.Accounts.Register(ctx, service.RegisterInput{Name: opts.name, Email: opts.email, Password: opts.password})
	if err != nil && !errors.Is(err, service.ErrConflict) {
		return seedSummary{}, err
	}
	sess, err := svc.Accounts.Authenticate(ctx, service.LoginInput{Email: opts.email, Password: opts.password})
	if err != nil {
		return seedSummary{}, fmt.Errorf("log in as %s: %w", opts.email, err)
	}
	userID := sess.User.ID
	sum := seedSummary{User: sess.User}

	for _, c := range sampleCategories {
		if _, err := svc.Categories.Create(ctx, userID, c); err != nil {
			return sum, err
		}
		sum.Categories++
	}

	today := time.Now()
	for _, st := range sampleTasks {
		in := service.TaskInput{
			Title:      st.title,
			Priority:   st.priority,
			Category:   st.category,
			IsComplete: rng.IntN(3) == 0,
		}
		// Some due dates land in the past so overdue tasks show up.
		if rng.IntN(2) == 0 {
			in.DueDate = today.AddDate(0, 0, rng.IntN(14)-5).Format(time.DateOnly)
		}
		if _, err := svc.Tasks.Create(ctx, userID, in); err != nil {
			return sum, err
		}
		sum.Tasks++
	}

	for i := 0; i < 6; i++ {
		content := sampleNotes[rng.IntN(len(sampleNotes))]
		in := service.NoteInput{
			Title:    fmt.Sprintf("Journal %d", i+1),
			Content:  content,
			IsPinned: i == 0,
		}
		if i%2 == 1 {
			in.Category = "Work"
		}
		if _, err := svc.Notes.Create(ctx, userID, in); err != nil {
			return sum, err
		}
		sum.Notes++
	}
	return sum, nil
}
