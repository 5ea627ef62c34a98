package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/peoplepulse/peoplepulse/internal/accesscontrol"
)

type seedUser struct {
	Email       string
	DisplayName string
	Role        accesscontrol.Role
	Department  accesscontrol.Department
	Position    string
}

var seedUsers = []seedUser{
	{"amira.hassan@peoplepulse.dev", "Amira Hassan", accesscontrol.RoleAdmin, accesscontrol.DepartmentAdmin, "Platform Administrator"},
	{"lena.fischer@peoplepulse.dev", "Lena Fischer", accesscontrol.RoleHRManager, accesscontrol.DepartmentHR, "HR Manager"},
	{"tomas.silva@peoplepulse.dev", "Tomas Silva", accesscontrol.RoleIT, accesscontrol.DepartmentIT, "IT Support Specialist"},
	{"mei.chen@peoplepulse.dev", "Mei Chen", accesscontrol.RoleDepartmentManager, accesscontrol.DepartmentEngineering, "Engineering Manager"},
	{"daniel.okoro@peoplepulse.dev", "Daniel Okoro", accesscontrol.RoleDepartmentManager, accesscontrol.DepartmentSales, "Sales Manager"},
	{"sofia.rossi@peoplepulse.dev", "Sofia Rossi", accesscontrol.RoleSeniorEmployee, accesscontrol.DepartmentEngineering, "Senior Engineer"},
	{"jon.berg@peoplepulse.dev", "Jon Berg", accesscontrol.RoleEmployee, accesscontrol.DepartmentEngineering, "Software Engineer"},
	{"paula.mendes@peoplepulse.dev", "Paula Mendes", accesscontrol.RoleEmployee, accesscontrol.DepartmentMarketing, "Marketing Specialist"},
	{"ravi.kumar@peoplepulse.dev", "Ravi Kumar", accesscontrol.RoleIntern, accesscontrol.DepartmentFinance, "Finance Intern"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample users for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"request_comments", "requests", "users"} {
				if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		for _, u := range seedUsers {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM users WHERE email = $1", u.Email).Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Email)
				continue
			}

			_, err := db.Exec(
				`INSERT INTO users (email, display_name, password_hash, role, department, position, is_active, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, true, now(), now())`,
				u.Email, u.DisplayName, string(hash), u.Role, u.Department, u.Position,
			)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded user: %s (%s, %s)\n", u.Email, u.Role, u.Department)
		}

		fmt.Println("Seeding complete. All users use password \"password\".")
	},
}
