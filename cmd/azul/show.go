package main

import (
	"fmt"
	"os"

	"github.com/liwamdaman/azul/internal/display"
	"github.com/liwamdaman/azul/internal/savegame"
)

type ShowCmd struct {
	File string `arg:"" type:"existingfile" help:"Save file to render"`
}

func (c ShowCmd) Run() error {
	doc, err := savegame.Load(c.File)
	if err != nil {
		return err
	}
	s, err := doc.Snapshot()
	if err != nil {
		return err
	}
	fmt.Printf("Game %s, saved %s\n\n", doc.ID, doc.SavedAt.Format("2006-01-02 15:04"))
	fmt.Println(display.New(os.Stdout).Board(s))
	return nil
}
