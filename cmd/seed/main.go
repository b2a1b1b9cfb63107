// seed genera el INSERT de un usuario con su contraseña ya hasheada (bcrypt).
//
// Uso: go run ./cmd/seed -username gerente1 -email gerente@ferreteria.gt -password secreto -role gerente
// La salida se aplica con psql; el usuario queda en la sucursal central si no se indica -branch.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/ferreteria-api/internal/application/auth"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
)

func main() {
	username := flag.String("username", "", "nombre de usuario")
	email := flag.String("email", "", "correo")
	name := flag.String("name", "", "nombre completo")
	password := flag.String("password", "", "contraseña en texto plano")
	role := flag.String("role", "cajero", "gerente | digitador | cajero")
	branch := flag.String("branch", "00000000-0000-0000-0000-000000000001", "id de sucursal")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "username, email y password son obligatorios")
		flag.Usage()
		os.Exit(2)
	}
	if !access.ValidRole(*role) {
		fmt.Fprintf(os.Stderr, "rol inválido: %q\n", *role)
		os.Exit(2)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash:", err)
		os.Exit(1)
	}

	fmt.Printf(
		"INSERT INTO users (id, username, email, password_hash, name, role, branch_id) VALUES\n"+
			"    (%s, %s, %s, %s, %s, %s, %s);\n",
		quote(uuid.NewString()), quote(*username), quote(strings.ToLower(*email)),
		quote(hash), quote(*name), quote(*role), quote(*branch),
	)
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
