// devtoken firma un JWT de desarrollo para un usuario. La identidad real la emite un proveedor externo.
//
//	go run ./cmd/devtoken -user <id>
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/resell-inventory/pkg/config"
	"github.com/jhoicas/resell-inventory/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "id del usuario (vacío = uuid nuevo)")
	minutes := flag.Int("minutes", 0, "vigencia en minutos (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	if *userID == "" {
		*userID = uuid.NewString()
	}
	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "firmar token:", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "user_id=%s expira en %d min\n", *userID, exp)
	fmt.Println(tok)
}
