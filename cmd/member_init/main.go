// member_init seeds or updates one login account in the members table.
package main

import (
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"paper-checkin/internal/config"
	"paper-checkin/internal/logger"
	"paper-checkin/internal/model"
)

func main() {
	configFile := flag.String("config", "etc/config-dev.yaml", "config file")
	username := flag.String("username", "", "login username")
	password := flag.String("password", "", "login password (stored as bcrypt hash)")
	name := flag.String("name", "", "display name, defaults to the username")
	role := flag.String("role", "admin", "role")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("usage: member_init -username <u> -password <p> [-name <n>] [-role <r>]")
	}
	if *name == "" {
		*name = *username
	}

	logger.Init(config.LogConfig{Level: "info", Console: true})

	cfg := config.Load(*configFile)
	if !cfg.HasDatabase() {
		log.Fatal("no database configured; set database.host or MYSQL_HOST")
	}
	db, err := cfg.OpenGormDB()
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&model.Member{}, &model.CheckinRecord{}); err != nil {
		log.Fatal("migrate failed:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	var m model.Member
	err = db.Where("username = ?", *username).First(&m).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		m = model.Member{Username: *username, Password: string(hash), Name: *name, Role: *role}
		if err := db.Create(&m).Error; err != nil {
			log.Fatal("create member failed:", err)
		}
		logger.Info("member created", "id", m.ID, "username", m.Username)
	case err != nil:
		log.Fatal("query member failed:", err)
	default:
		if err := db.Model(&m).Updates(map[string]interface{}{
			"password": string(hash), "name": *name, "role": *role,
		}).Error; err != nil {
			log.Fatal("update member failed:", err)
		}
		logger.Info("member updated", "id", m.ID, "username", m.Username)
	}
}
