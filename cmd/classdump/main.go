// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	jclass "github.com/saferwall/jclass"
	"github.com/spf13/cobra"
)

var (
	all        bool
	verbose    bool
	header     bool
	pool       bool
	fields     bool
	methods    bool
	attributes bool
)

func prettyPrint(buf []byte) string {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, buf, "", "\t"); err != nil {
		log.Println("JSON parse error: ", err)
		return string(buf)
	}
	return prettyJSON.String()
}

func isDirectory(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func dumpClass(filename string, cmd *cobra.Command) {
	log.Printf("Processing filename %s", filename)

	cf, err := jclass.Open(filename, &jclass.Options{})
	if err != nil {
		log.Printf("Error while opening file: %s, reason: %s", filename, err)
		return
	}

	wantHeader, _ := cmd.Flags().GetBool("header")
	if wantHeader || all {
		name, _ := cf.Name()
		super, _ := cf.SuperName()
		b, _ := json.Marshal(struct {
			Version    string
			ThisClass  string
			SuperClass string
		}{cf.Version.String(), name, super})
		fmt.Println(prettyPrint(b))
	}

	wantPool, _ := cmd.Flags().GetBool("pool")
	if wantPool || all {
		b, _ := json.Marshal(cf.Pool)
		fmt.Println(prettyPrint(b))
	}

	wantFields, _ := cmd.Flags().GetBool("fields")
	if wantFields || all {
		b, _ := json.Marshal(cf.Fields)
		fmt.Println(prettyPrint(b))
	}

	wantMethods, _ := cmd.Flags().GetBool("methods")
	if wantMethods || all {
		b, _ := json.Marshal(cf.Methods)
		fmt.Println(prettyPrint(b))
	}

	wantAttributes, _ := cmd.Flags().GetBool("attributes")
	if wantAttributes || all {
		b, _ := json.Marshal(cf.Attributes)
		fmt.Println(prettyPrint(b))
	}
}

func dump(cmd *cobra.Command, args []string) {
	filePath := args[0]

	if !isDirectory(filePath) {
		dumpClass(filePath, cmd)
		return
	}

	var fileList []string
	filepath.Walk(filePath, func(path string, f os.FileInfo, err error) error {
		if !isDirectory(path) {
			fileList = append(fileList, path)
		}
		return nil
	})

	for _, file := range fileList {
		dumpClass(file, cmd)
	}
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "classdump",
		Short: "A JVM .class file reader",
		Long:  "A byte-accurate structural reader for JVM class files",
		Run: func(cmd *cobra.Command, args []string) {
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Long:  "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print("You are using version 0.0.1")
		},
	}

	var dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dumps the file",
		Long:  "Dumps the structural view of a JVM class file",
		Args:  cobra.MinimumNArgs(1),
		Run:   dump,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	dumpCmd.Flags().BoolVarP(&header, "header", "", false, "Dump class header")
	dumpCmd.Flags().BoolVarP(&pool, "pool", "", false, "Dump constant pool")
	dumpCmd.Flags().BoolVarP(&fields, "fields", "", false, "Dump fields")
	dumpCmd.Flags().BoolVarP(&methods, "methods", "", false, "Dump methods")
	dumpCmd.Flags().BoolVarP(&attributes, "attributes", "", false, "Dump attributes")
	dumpCmd.Flags().BoolVarP(&all, "all", "", false, "Dump everything")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
