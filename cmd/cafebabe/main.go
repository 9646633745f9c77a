// Copyright 2024 The cafebabe authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/accusitive/cafebabe"
	"github.com/spf13/cobra"
)

var (
	wantFields     bool
	wantMethods    bool
	wantInterfaces bool
	wantAnomalies  bool
	parseBytecode  bool
	all            bool
)

func prettyPrint(v interface{}) string {
	buf, err := json.Marshal(v)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return ""
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf, "", "\t"); err != nil {
		log.Println("JSON indent error:", err)
		return string(buf)
	}
	return pretty.String()
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dumpOne(filename string) {
	log.Printf("parsing %s", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		log.Printf("error reading %s: %s", filename, err)
		return
	}

	cls, err := cafebabe.ParseBytes(data, &cafebabe.Options{ParseBytecode: parseBytecode})
	if err != nil {
		log.Printf("error parsing %s: %s", filename, err)
		return
	}

	fmt.Printf("\n\t------[ %s ]------\n\n", cls.ThisClass)
	fmt.Printf("Major/minor version:\t %d.%d\n", cls.MajorVersion, cls.MinorVersion)
	fmt.Printf("Access flags:\t 0x%04x\n", cls.AccessFlags)
	if cls.SuperClass != nil {
		fmt.Printf("Super class:\t %s\n", *cls.SuperClass)
	}

	if wantInterfaces || all {
		fmt.Println(prettyPrint(cls.Interfaces))
	}
	if wantFields || all {
		fmt.Println(prettyPrint(cls.Fields))
	}
	if wantMethods || all {
		fmt.Println(prettyPrint(cls.Methods))
	}
	if wantAnomalies || all {
		for _, a := range cls.Anomalies {
			fmt.Printf("anomaly: %s\n", a)
		}
	}
}

func dump(cmd *cobra.Command, args []string) {
	path := args[0]
	if !isDirectory(path) {
		dumpOne(path)
		return
	}

	var files []string
	filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && filepath.Ext(p) == ".class" {
			files = append(files, p)
		}
		return nil
	})
	for _, f := range files {
		dumpOne(f)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "cafebabe",
		Short: "A JVM class file parser",
		Long:  "A class file parser built for speed and safety on untrusted input",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.1.0")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump [path]",
		Short: "Dumps the parsed structure of a class file",
		Long:  "Dumps interesting structures of a class file, or every .class file under a directory",
		Args:  cobra.ExactArgs(1),
		Run:   dump,
	}
	dumpCmd.Flags().BoolVar(&wantFields, "fields", false, "dump field list")
	dumpCmd.Flags().BoolVar(&wantMethods, "methods", false, "dump method list")
	dumpCmd.Flags().BoolVar(&wantInterfaces, "interfaces", false, "dump interface list")
	dumpCmd.Flags().BoolVar(&wantAnomalies, "anomalies", false, "dump detected anomalies")
	dumpCmd.Flags().BoolVar(&parseBytecode, "bytecode", false, "decode Code attribute bytecode")
	dumpCmd.Flags().BoolVar(&all, "all", false, "dump everything")

	rootCmd.AddCommand(versionCmd, dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
