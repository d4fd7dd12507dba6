package main

import (
	"context"
	"os"
	"strconv"
	"strings"

	"legalpad/internal/domain/policy"
	"legalpad/internal/domain/sqlite"
	"legalpad/internal/domain/sqlite/repository"
	"legalpad/internal/http/handler"
	authmw "legalpad/internal/http/middleware"
	"legalpad/internal/infrastructure/aws/cognito"
	"legalpad/internal/infrastructure/aws/storage"
	"legalpad/internal/service"
	"legalpad/internal/utils"
	"legalpad/internal/utils/uid"
	"legalpad/internal/utils/validators"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	ctx := context.Background()
	loadEnv(ctx)

	machineID, err := strconv.ParseInt(envOr("MACHINE_ID", "1"), 10, 64)
	if err != nil {
		log.Fatalf("invalid MACHINE_ID: %v", err)
	}
	uid.Init(machineID)

	if err = utils.InitJWKS(os.Getenv("AWS_REGION"), os.Getenv("COGNITO_USER_POOL_ID")); err != nil {
		log.Fatalf("failed to init JWKS: %v", err)
	}

	db, err := sqlite.Init(envOr("DB_PATH", "legalpad.db"))
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	identity, err := cognito.NewIdentityClient(ctx)
	if err != nil {
		log.Fatalf("failed to create identity client: %v", err)
	}
	s3, err := storage.NewS3Client(ctx)
	if err != nil {
		log.Fatalf("failed to create storage client: %v", err)
	}

	validate := newValidator()

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	aptRepo := repository.NewAppointmentRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	schedule := policy.NewSchedulePolicy(aptRepo)

	userService := service.NewUserService(userRepo, identity, validate)
	clientService := service.NewClientService(clientRepo, validate)
	aptService := service.NewAppointmentService(aptRepo, clientRepo, schedule, validate)
	noteService := service.NewNoteService(noteRepo, clientRepo, aptRepo, s3, validate)

	users := handler.NewUserHandler(userService)
	clients := handler.NewClientHandler(clientService)
	appointments := handler.NewAppointmentHandler(aptService)
	notes := handler.NewNoteHandler(noteService)

	auth := authmw.NewAuthMiddleware(userRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("12M"))

	e.GET("/health", handler.Health)

	e.POST("/api/users", users.Signup)
	e.POST("/api/users/login", users.Login)
	e.POST("/api/users/confirms", users.ConfirmSignup)
	e.POST("/api/users/confirms/resend", users.ResendConfirmation)
	e.POST("/api/users/check-email", users.CheckEmail)

	api := e.Group("/api", auth.RequireUser)
	api.GET("/users/@me", users.GetSelf)

	api.GET("/clients", clients.ListClients)
	api.POST("/clients", clients.CreateClient)
	api.GET("/clients/search/suggestions", clients.Suggestions)
	api.GET("/clients/:id", clients.GetClient)
	api.PUT("/clients/:id", clients.UpdateClient)
	api.DELETE("/clients/:id", clients.DeleteClient)
	api.POST("/clients/:id/notes", clients.AddClientNote)

	api.GET("/appointments", appointments.ListAppointments)
	api.POST("/appointments", appointments.CreateAppointment)
	api.GET("/appointments/calendar", appointments.CalendarView)
	api.GET("/appointments/:id", appointments.GetAppointment)
	api.PUT("/appointments/:id", appointments.UpdateAppointment)
	api.PUT("/appointments/:id/status", appointments.UpdateStatus)
	api.DELETE("/appointments/:id", appointments.DeleteAppointment)

	api.GET("/notes", notes.ListNotes)
	api.POST("/notes", notes.CreateNote)
	api.GET("/notes/search/tags", notes.ListTags)
	api.GET("/notes/:id", notes.GetNote)
	api.PUT("/notes/:id", notes.UpdateNote)
	api.DELETE("/notes/:id", notes.DeleteNote)
	api.PUT("/notes/:id/favorite", notes.ToggleFavorite)
	api.POST("/notes/:id/voice", notes.UploadVoice)
	api.POST("/notes/:id/attachments", notes.UploadAttachment)

	log.Fatal(e.Start(":" + envOr("PORT", "8080")))
}

func newValidator() *validator.Validate {
	validate := validator.New()
	register(validate, "phoneformat", validators.PhoneFormat)
	register(validate, "hasupper", validators.HasUpper)
	register(validate, "haslower", validators.HasLower)
	register(validate, "hasdigit", validators.HasDigit)
	register(validate, "hasspecial", validators.HasSpecial)
	register(validate, "nospaces", validators.NoWhiteSpaces)
	register(validate, "nodupes", validators.NoDupes)
	return validate
}

func register(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		log.Fatalf("failed to register validator %s: %v", tag, err)
	}
}

// loadEnv reads .env locally; in prod the variables come from the SSM
// parameter store under SSM_ENV_PATH instead.
func loadEnv(ctx context.Context) {
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Warnf("no .env file loaded: %v", err)
		}
		return
	}

	path := envOr("SSM_ENV_PATH", "/legalpad/prod/")
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load aws config: %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	decrypt := true

	var next *string
	for {
		out, perr := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:           &path,
			WithDecryption: &decrypt,
			NextToken:      next,
		})
		if perr != nil {
			log.Fatalf("failed to fetch parameters from %s: %v", path, perr)
		}

		for _, p := range out.Parameters {
			name := strings.TrimPrefix(*p.Name, path)
			if err = os.Setenv(name, *p.Value); err != nil {
				log.Fatalf("failed to set env %s: %v", name, err)
			}
		}

		if out.NextToken == nil {
			break
		}
		next = out.NextToken
	}
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
