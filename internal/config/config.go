package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config agrupa la configuración del servidor leída del entorno
type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFromName string
	SMTPFrom     string

	S3Bucket string

	// Ventana de check-in alrededor de la fecha prevista, en días
	CheckInDiasAntes   int
	CheckInDiasDespues int

	SchedulerEnabled bool
}

// Load lee el archivo .env si existe y arma la configuración con valores
// por defecto razonables para desarrollo local
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No se encontró archivo .env, usando variables de entorno")
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "reservas"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Reservas Hotel"),
		SMTPFrom:     getEnv("SMTP_FROM", ""),

		S3Bucket: getEnv("S3_BUCKET_NAME", ""),

		CheckInDiasAntes:   getEnvInt("CHECKIN_DIAS_ANTES", 0),
		CheckInDiasDespues: getEnvInt("CHECKIN_DIAS_DESPUES", 0),

		SchedulerEnabled: getEnvBool("SCHEDULER_ENABLED", false),
	}
}

// GetDBConnString arma la cadena de conexión para lib/pq
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(clave, porDefecto string) string {
	if valor := os.Getenv(clave); valor != "" {
		return valor
	}
	return porDefecto
}

func getEnvInt(clave string, porDefecto int) int {
	valor := os.Getenv(clave)
	if valor == "" {
		return porDefecto
	}
	n, err := strconv.Atoi(valor)
	if err != nil {
		log.Printf("Valor inválido para %s: %q, usando %d", clave, valor, porDefecto)
		return porDefecto
	}
	return n
}

func getEnvBool(clave string, porDefecto bool) bool {
	valor := os.Getenv(clave)
	if valor == "" {
		return porDefecto
	}
	b, err := strconv.ParseBool(valor)
	if err != nil {
		log.Printf("Valor inválido para %s: %q, usando %v", clave, valor, porDefecto)
		return porDefecto
	}
	return b
}
