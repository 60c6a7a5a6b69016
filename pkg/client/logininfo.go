package client

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoginInfo is the credential bundle TryConnect needs.
type LoginInfo struct {
	Address  string `yaml:"address"`
	Port     int    `yaml:"port"`
	Slot     string `yaml:"slot"`
	Password string `yaml:"password"`
}

// NewLoginInfo targets the public archipelago.gg host by default.
func NewLoginInfo(port int, slot string) LoginInfo {
	return LoginInfo{Address: "archipelago.gg", Port: port, Slot: slot}
}

func (l LoginInfo) String() string {
	return fmt.Sprintf("Login Info: [%s:%d] as [%s]", l.Address, l.Port, l.Slot)
}

// LoadLoginInfo reads a yaml credential file.
func LoadLoginInfo(path string) (LoginInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return LoginInfo{}, err
	}
	var info LoginInfo
	if err := yaml.Unmarshal(raw, &info); err != nil {
		return LoginInfo{}, fmt.Errorf("login info %s: %w", path, err)
	}
	if info.Address == "" {
		info.Address = "archipelago.gg"
	}
	return info, nil
}
