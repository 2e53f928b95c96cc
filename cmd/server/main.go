package main

import (
	"log"
	"strings"

	"concessionaria-backend/internal/auth"
	"concessionaria-backend/internal/catalog"
	"concessionaria-backend/internal/clients"
	"concessionaria-backend/internal/config"
	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/employees"
	"concessionaria-backend/internal/models"
	"concessionaria-backend/internal/photos"
	"concessionaria-backend/internal/rentals"
	"concessionaria-backend/internal/reports"
	"concessionaria-backend/internal/sales"
	"concessionaria-backend/internal/stock"
	"concessionaria-backend/internal/vehicles"
	"concessionaria-backend/internal/website"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro interno do servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// arquivos de mídia (fotos dos carros, documentos)
	app.Static("/media", cfg.MediaPath)

	api := app.Group("/api")

	// Autenticação pública
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Loja pública (sem autenticação)
	loja := api.Group("/loja")
	loja.Post("/cadastro", auth.RegisterClientHandler(cfg))
	loja.Get("/home", website.HomeHandler())
	loja.Get("/carros", website.ListHandler())
	loja.Get("/carros/:id", website.DetailHandler())

	// Rotas autenticadas
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Catálogo
	protected.Get("/marcas", catalog.ListBrandsHandler())
	protected.Post("/marcas", catalog.CreateBrandHandler())
	protected.Put("/marcas/:id", catalog.UpdateBrandHandler())
	protected.Delete("/marcas/:id", catalog.DeleteBrandHandler())

	protected.Get("/modelos", catalog.ListModelsHandler())
	protected.Post("/modelos", catalog.CreateModelHandler())
	protected.Put("/modelos/:id", catalog.UpdateModelHandler())
	protected.Delete("/modelos/:id", catalog.DeleteModelHandler())

	protected.Get("/cores", catalog.ListColorsHandler())
	protected.Post("/cores", catalog.CreateColorHandler())
	protected.Put("/cores/:id", catalog.UpdateColorHandler())
	protected.Delete("/cores/:id", catalog.DeleteColorHandler())

	protected.Get("/opcionais", catalog.ListOptionsHandler())
	protected.Post("/opcionais", catalog.CreateOptionHandler())
	protected.Put("/opcionais/:id", catalog.UpdateOptionHandler())
	protected.Delete("/opcionais/:id", catalog.DeleteOptionHandler())

	protected.Get("/catalogo/estatisticas", catalog.StatsHandler())

	// Veículos
	protected.Get("/carros", vehicles.ListHandler())
	protected.Get("/carros/:id", vehicles.GetHandler())
	protected.Post("/carros", vehicles.CreateHandler())
	protected.Put("/carros/:id", vehicles.UpdateHandler())
	protected.Delete("/carros/:id", vehicles.DeleteHandler())
	protected.Post("/carros/:id/opcionais", vehicles.AddOptionHandler())
	protected.Delete("/carros/:id/opcionais/:opcionalId", vehicles.RemoveOptionHandler())

	// Fotos
	protected.Post("/carros/:id/fotos", photos.UploadHandler(cfg))
	protected.Get("/carros/:id/fotos", photos.ListHandler())
	protected.Put("/carros/:id/fotos/ordem", photos.ReorderHandler())
	protected.Put("/fotos/:id/principal", photos.SetPrimaryHandler())
	protected.Delete("/fotos/:id", photos.DeleteHandler(cfg))

	// Manutenções
	protected.Post("/carros/:id/manutencoes", vehicles.CreateMaintenanceHandler())
	protected.Get("/carros/:id/manutencoes", vehicles.ListMaintenanceHandler())
	protected.Delete("/manutencoes/:id", vehicles.DeleteMaintenanceHandler())

	// Clientes
	protected.Get("/clientes", clients.ListHandler())
	protected.Get("/clientes/:id", clients.GetHandler())
	protected.Post("/clientes", clients.CreateHandler())
	protected.Put("/clientes/:id", clients.UpdateHandler())
	protected.Delete("/clientes/:id", clients.DeleteHandler())

	// Vendas
	protected.Get("/vendas", sales.ListHandler())
	protected.Get("/vendas/:id", sales.GetHandler())
	protected.Post("/vendas", sales.CreateHandler())
	protected.Put("/vendas/:id", sales.UpdateHandler())
	protected.Delete("/vendas/:id", sales.DeleteHandler())
	protected.Post("/vendas/:id/documentos", sales.UploadDocumentHandler(cfg))
	protected.Get("/vendas/:id/documentos", sales.ListDocumentsHandler())
	protected.Delete("/documentos-venda/:id", sales.DeleteDocumentHandler(cfg))

	// Aluguéis
	protected.Get("/alugueis", rentals.ListHandler())
	protected.Get("/alugueis/:id", rentals.GetHandler())
	protected.Post("/alugueis", rentals.CreateHandler())
	protected.Put("/alugueis/:id", rentals.UpdateHandler())
	protected.Post("/alugueis/:id/pagamentos", rentals.CreatePaymentHandler())
	protected.Get("/alugueis/:id/pagamentos", rentals.ListPaymentsHandler())

	// Estoque
	protected.Post("/estoque/movimentacoes", stock.CreateMovementHandler())
	protected.Get("/estoque/movimentacoes", stock.ListMovementsHandler())
	protected.Get("/carros/:id/historico-status", stock.ListStatusHistoryHandler())

	// Rotas de gestão (admin e gerente)
	gestao := protected.Group("")
	gestao.Use(auth.RequireRole(models.RoleAdmin, models.RoleManager))

	gestao.Get("/funcionarios", employees.ListHandler())
	gestao.Get("/funcionarios/:id", employees.GetHandler())
	gestao.Post("/funcionarios", employees.CreateHandler())
	gestao.Put("/funcionarios/:id", employees.UpdateHandler())
	gestao.Delete("/funcionarios/:id", employees.DeleteHandler())

	gestao.Get("/relatorios", reports.ReportHandler())

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
