package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/douglas-germano/fitgen-sub000/internal/client"
	"github.com/douglas-germano/fitgen-sub000/internal/config"
	"github.com/douglas-germano/fitgen-sub000/internal/models"
	"github.com/douglas-germano/fitgen-sub000/internal/session"
	"github.com/douglas-germano/fitgen-sub000/internal/storage"
	filestore "github.com/douglas-germano/fitgen-sub000/internal/storage/file"
	"github.com/douglas-germano/fitgen-sub000/internal/storage/memory"
	redisstore "github.com/douglas-germano/fitgen-sub000/internal/storage/redis"
	"github.com/douglas-germano/fitgen-sub000/internal/storage/securefile"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const usage = `fitgen — клиент FitGen API

Использование: fitgen [--config path] <команда> [флаги]

Команды:
  login | register | logout | status | refresh | run
  meal (log|list|estimate|summary|delete)
  diet (generate|show)
  workout (log|list) | exercises
  water (log|show|goal)
  weight (log|history)
  achievements
  chat (send|history)
  notif (list|read)
  admin (users|deactivate|activate|audit|broadcast|exercise-add|exercise-del)
`

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	store, err := openStore(rootCtx, cfg.Storage)
	if err != nil {
		log.Error("storage_open_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	sess := session.NewSession(store)

	api := client.New(cfg.API.BaseURL, sess, client.Options{Timeout: cfg.API.Timeout})

	mgr := session.NewManager(sess, api, session.Options{
		CheckInterval: cfg.Session.CheckInterval,
		MaxRetries:    cfg.Session.MaxRetries,
		RetryStep:     cfg.Session.RetryStep,
		// Аналог редиректа на страницу логина: сообщаем и гасим процесс.
		OnLogout: func() {
			fmt.Fprintln(os.Stderr, "session expired, run `fitgen login`")
			rootCancel()
		},
	})

	app := &app{cfg: cfg, api: api, sess: sess, mgr: mgr, log: log}

	if err := app.dispatch(rootCtx, args[0], args[1:]); err != nil {
		if client.IsUnauthenticated(err) {
			// 401 на любом вызове — та же терминальная ветка, что и у refresh.
			_ = mgr.Logout(rootCtx)
			fmt.Fprintln(os.Stderr, "unauthorized, run `fitgen login`")
			os.Exit(1)
		}

		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openStore выбирает бэкенд хранения сессии по конфигурации.
func openStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Backend {
	case "memory":
		return memory.New(), nil
	case "file":
		return filestore.New(storagePath(cfg.Path, "session.json"))
	case "securefile", "":
		return securefile.New(storagePath(cfg.Path, "session.dat"))
	case "redis":
		return redisstore.New(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// storagePath — путь файла сессии; по умолчанию — конфиг-директория пользователя.
func storagePath(explicit, name string) string {
	if explicit != "" {
		return explicit
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}

	return filepath.Join(dir, "fitgen", name)
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

type app struct {
	cfg  *config.Config
	api  *client.Client
	sess *session.Session
	mgr  *session.Manager
	log  *slog.Logger
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "logout":
		return a.cmdLogout(ctx)
	case "status":
		return a.cmdStatus(ctx)
	case "refresh":
		return a.cmdRefresh(ctx)
	case "run":
		return a.cmdRun(ctx)
	case "meal":
		return a.cmdMeal(ctx, args)
	case "diet":
		return a.cmdDiet(ctx, args)
	case "workout":
		return a.cmdWorkout(ctx, args)
	case "exercises":
		return a.cmdExercises(ctx, args)
	case "water":
		return a.cmdWater(ctx, args)
	case "weight":
		return a.cmdWeight(ctx, args)
	case "achievements":
		return a.cmdAchievements(ctx)
	case "chat":
		return a.cmdChat(ctx, args)
	case "notif":
		return a.cmdNotif(ctx, args)
	case "admin":
		return a.cmdAdmin(ctx, args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// printJSON — единый вывод результатов команд.
func printJSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(raw))
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pair, err := a.api.Login(ctx, models.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}

	if err := a.sess.SetTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return err
	}

	fmt.Println("logged in")
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pair, err := a.api.Register(ctx, models.RegisterRequest{Name: *name, Email: *email, Password: *password})
	if err != nil {
		return err
	}

	if err := a.sess.SetTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return err
	}

	fmt.Println("registered")
	return nil
}

func (a *app) cmdLogout(ctx context.Context) error {
	// Сначала отзываем refresh-токен на бэкенде (не критично при сбое),
	// затем чистим локальную сессию.
	if rt := a.sess.RefreshToken(ctx); rt != "" {
		if err := a.api.Logout(ctx, rt); err != nil {
			a.log.Warn("remote_logout_failed", slog.String("err", err.Error()))
		}
	}

	if err := a.sess.Clear(ctx); err != nil {
		return err
	}

	fmt.Println("logged out")
	return nil
}

func (a *app) cmdStatus(ctx context.Context) error {
	left, ok := a.sess.ExpiresIn(ctx)
	if !ok {
		fmt.Println("not logged in")
		return nil
	}

	fmt.Printf("access token expires in %s\n", left.Round(time.Minute))

	profile, err := a.api.CurrentProfile(ctx)
	if err != nil {
		return err
	}

	return printJSON(profile)
}

func (a *app) cmdRefresh(ctx context.Context) error {
	ok, err := a.mgr.Refresh(ctx)
	if err != nil {
		return err
	}

	if !ok {
		fmt.Println("nothing refreshed")
		return nil
	}

	fmt.Println("token refreshed")
	return nil
}

// cmdRun — демон-режим: держит сессию живой до сигнала завершения.
func (a *app) cmdRun(ctx context.Context) error {
	a.log.Info("session_keeper_started",
		slog.Duration("check_interval", a.cfg.Session.CheckInterval),
	)

	stop := a.mgr.Start(ctx)
	defer stop()

	// Стартовая проверка, не дожидаясь первого тика.
	a.mgr.Wake()

	<-ctx.Done()
	a.log.Info("session_keeper_stopped")
	return nil
}

func (a *app) cmdMeal(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("meal: expected subcommand (log|list|estimate|summary|delete)")
	}

	switch args[0] {
	case "log":
		fs := flag.NewFlagSet("meal log", flag.ContinueOnError)
		name := fs.String("name", "", "meal name")
		mealType := fs.String("type", "snack", "breakfast|lunch|dinner|snack")
		calories := fs.Float64("calories", 0, "kcal")
		protein := fs.Float64("protein", 0, "grams")
		carbs := fs.Float64("carbs", 0, "grams")
		fat := fs.Float64("fat", 0, "grams")
		date := fs.String("date", "", "YYYY-MM-DD")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		meal, err := a.api.LogMeal(ctx, models.LogMealRequest{
			Name: *name, MealType: *mealType,
			Calories: *calories, ProteinG: *protein, CarbsG: *carbs, FatG: *fat,
			Date: *date,
		})
		if err != nil {
			return err
		}

		return printJSON(meal)

	case "list":
		fs := flag.NewFlagSet("meal list", flag.ContinueOnError)
		date := fs.String("date", "", "YYYY-MM-DD")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		meals, err := a.api.MealsByDate(ctx, *date)
		if err != nil {
			return err
		}

		return printJSON(meals)

	case "estimate":
		fs := flag.NewFlagSet("meal estimate", flag.ContinueOnError)
		desc := fs.String("desc", "", "free-form meal description")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		est, err := a.api.EstimateMeal(ctx, *desc)
		if err != nil {
			return err
		}

		return printJSON(est)

	case "summary":
		fs := flag.NewFlagSet("meal summary", flag.ContinueOnError)
		date := fs.String("date", "", "YYYY-MM-DD")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		sum, err := a.api.NutritionSummary(ctx, *date)
		if err != nil {
			return err
		}

		return printJSON(sum)

	case "delete":
		fs := flag.NewFlagSet("meal delete", flag.ContinueOnError)
		id := fs.String("id", "", "meal id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		return a.api.DeleteMeal(ctx, *id)

	default:
		return fmt.Errorf("meal: unknown subcommand %q", args[0])
	}
}

func (a *app) cmdDiet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("diet: expected subcommand (generate|show)")
	}

	switch args[0] {
	case "generate":
		fs := flag.NewFlagSet("diet generate", flag.ContinueOnError)
		goal := fs.String("goal", "maintain", "lose|maintain|gain")
		calories := fs.Float64("calories", 0, "daily kcal goal")
		meals := fs.Int("meals", 0, "meals per day")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		plan, err := a.api.GenerateDiet(ctx, models.GenerateDietRequest{
			Goal: *goal, CaloriesGoal: *calories, MealsPerDay: *meals,
		})
		if err != nil {
			return err
		}

		return printJSON(plan)

	case "show":
		plan, err := a.api.CurrentDiet(ctx)
		if err != nil {
			return err
		}

		return printJSON(plan)

	default:
		return fmt.Errorf("diet: unknown subcommand %q", args[0])
	}
}

func (a *app) cmdWorkout(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("workout: expected subcommand (log|list)")
	}

	switch args[0] {
	case "log":
		fs := flag.NewFlagSet("workout log", flag.ContinueOnError)
		name := fs.String("name", "", "workout name")
		duration := fs.Int("duration", 0, "minutes")
		date := fs.String("date", "", "YYYY-MM-DD")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		w, err := a.api.LogWorkout(ctx, models.LogWorkoutRequest{
			Name: *name, DurationMin: *duration, Date: *date,
		})
		if err != nil {
			return err
		}

		return printJSON(w)

	case "list":
		fs := flag.NewFlagSet("workout list", flag.ContinueOnError)
		limit := fs.Int("limit", 0, "max items")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		ws, err := a.api.Workouts(ctx, *limit)
		if err != nil {
			return err
		}

		return printJSON(ws)

	default:
		return fmt.Errorf("workout: unknown subcommand %q", args[0])
	}
}

func (a *app) cmdExercises(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("exercises", flag.ContinueOnError)
	group := fs.String("group", "", "muscle group filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ex, err := a.api.Exercises(ctx, *group)
	if err != nil {
		return err
	}

	return printJSON(ex)
}

func (a *app) cmdWater(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("water: expected subcommand (log|show|goal)")
	}

	switch args[0] {
	case "log":
		fs := flag.NewFlagSet("water log", flag.ContinueOnError)
		ml := fs.Int("ml", 250, "amount in ml")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		day, err := a.api.LogWater(ctx, models.LogWaterRequest{AmountMl: *ml})
		if err != nil {
			return err
		}

		return printJSON(day)

	case "show":
		fs := flag.NewFlagSet("water show", flag.ContinueOnError)
		date := fs.String("date", "", "YYYY-MM-DD")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		day, err := a.api.HydrationByDate(ctx, *date)
		if err != nil {
			return err
		}

		return printJSON(day)

	case "goal":
		fs := flag.NewFlagSet("water goal", flag.ContinueOnError)
		ml := fs.Int("ml", 2000, "daily goal in ml")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		return a.api.SetHydrationGoal(ctx, *ml)

	default:
		return fmt.Errorf("water: unknown subcommand %q", args[0])
	}
}

func (a *app) cmdWeight(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("weight: expected subcommand (log|history)")
	}

	switch args[0] {
	case "log":
		fs := flag.NewFlagSet("weight log", flag.ContinueOnError)
		kg := fs.Float64("kg", 0, "weight in kg")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		m, err := a.api.LogMetric(ctx, models.LogMetricRequest{WeightKg: *kg})
		if err != nil {
			return err
		}

		return printJSON(m)

	case "history":
		fs := flag.NewFlagSet("weight history", flag.ContinueOnError)
		limit := fs.Int("limit", 0, "max items")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		ms, err := a.api.MetricsHistory(ctx, *limit)
		if err != nil {
			return err
		}

		return printJSON(ms)

	default:
		return fmt.Errorf("weight: unknown subcommand %q", args[0])
	}
}

func (a *app) cmdAchievements(ctx context.Context) error {
	list, err := a.api.Achievements(ctx)
	if err != nil {
		return err
	}

	return printJSON(list)
}

func (a *app) cmdChat(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("chat: expected subcommand (send|history)")
	}

	switch args[0] {
	case "send":
		fs := flag.NewFlagSet("chat send", flag.ContinueOnError)
		msg := fs.String("msg", "", "message to the AI coach")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		reply, err := a.api.SendChat(ctx, *msg)
		if err != nil {
			return err
		}

		fmt.Println(reply.Content)
		return nil

	case "history":
		fs := flag.NewFlagSet("chat history", flag.ContinueOnError)
		limit := fs.Int("limit", 0, "max items")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		msgs, err := a.api.ChatHistory(ctx, *limit)
		if err != nil {
			return err
		}

		return printJSON(msgs)

	default:
		return fmt.Errorf("chat: unknown subcommand %q", args[0])
	}
}

func (a *app) cmdNotif(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("notif: expected subcommand (list|read)")
	}

	switch args[0] {
	case "list":
		list, err := a.api.Notifications(ctx)
		if err != nil {
			return err
		}

		return printJSON(list)

	case "read":
		fs := flag.NewFlagSet("notif read", flag.ContinueOnError)
		id := fs.String("id", "", "notification id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		return a.api.MarkNotificationRead(ctx, *id)

	default:
		return fmt.Errorf("notif: unknown subcommand %q", args[0])
	}
}

func (a *app) cmdAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("admin: expected subcommand (users|deactivate|activate|audit|broadcast|exercise-add|exercise-del)")
	}

	switch args[0] {
	case "users":
		fs := flag.NewFlagSet("admin users", flag.ContinueOnError)
		limit := fs.Int("limit", 0, "max items")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		users, err := a.api.AdminUsers(ctx, *limit)
		if err != nil {
			return err
		}

		return printJSON(users)

	case "deactivate", "activate":
		fs := flag.NewFlagSet("admin "+args[0], flag.ContinueOnError)
		id := fs.String("id", "", "user id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		return a.api.AdminSetUserActive(ctx, *id, args[0] == "activate")

	case "audit":
		fs := flag.NewFlagSet("admin audit", flag.ContinueOnError)
		actor := fs.String("actor", "", "actor id filter")
		action := fs.String("action", "", "action filter")
		limit := fs.Int("limit", 0, "max items")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		entries, err := a.api.AdminAuditLog(ctx, models.AuditQuery{
			ActorID: *actor, Action: *action, Limit: *limit,
		})
		if err != nil {
			return err
		}

		return printJSON(entries)

	case "broadcast":
		fs := flag.NewFlagSet("admin broadcast", flag.ContinueOnError)
		title := fs.String("title", "", "notification title")
		body := fs.String("body", "", "notification body")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		resp, err := a.api.AdminBroadcast(ctx, models.BroadcastRequest{Title: *title, Body: *body})
		if err != nil {
			return err
		}

		return printJSON(resp)

	case "exercise-add":
		fs := flag.NewFlagSet("admin exercise-add", flag.ContinueOnError)
		name := fs.String("name", "", "exercise name")
		group := fs.String("group", "", "muscle group")
		equipment := fs.String("equipment", "", "equipment")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		ex, err := a.api.AdminCreateExercise(ctx, models.UpsertExerciseRequest{
			Name: *name, MuscleGroup: *group, Equipment: *equipment,
		})
		if err != nil {
			return err
		}

		return printJSON(ex)

	case "exercise-del":
		fs := flag.NewFlagSet("admin exercise-del", flag.ContinueOnError)
		id := fs.String("id", "", "exercise id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		return a.api.AdminDeleteExercise(ctx, *id)

	default:
		return fmt.Errorf("admin: unknown subcommand %q", args[0])
	}
}
