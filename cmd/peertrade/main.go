package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"
)

var (
	peertradeDataDir = btcutil.AppDataDir("peertrade-operator", false)
	statePath        = path.Join(peertradeDataDir, "state.json")

	httpClient = &http.Client{Timeout: 30 * time.Second}
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "peertrade operator CLI"
	app.Usage = "Command line interface for peertraded daemon operators"
	app.Commands = append(
		app.Commands,
		&configCmd,
		&createoffer,
		&listoffers,
		&offer,
		&editoffer,
		&canceloffer,
		&activateoffer,
		&deactivateoffer,
		&takeoffer,
		&listtrades,
		&trade,
		&tradeevent,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	json.Unmarshal(file, &data)

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(peertradeDataDir); os.IsNotExist(err) {
		os.Mkdir(peertradeDataDir, os.ModeDir|0755)
	}

	currentData, _ := getState()
	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

func getBaseUrl() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	addr, ok := state["daemon_addr"]
	if !ok {
		return "", errors.New("missing daemon address: try 'config init'")
	}
	return fmt.Sprintf("http://%s/v1", addr), nil
}

func httpGet(urlPath string) (json.RawMessage, error) {
	baseUrl, err := getBaseUrl()
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Get(baseUrl + urlPath)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return parseResponse(resp)
}

func httpPost(urlPath string, body interface{}) (json.RawMessage, error) {
	baseUrl, err := getBaseUrl()
	if err != nil {
		return nil, err
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Post(
		baseUrl+urlPath, "application/json", bytes.NewReader(buf),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return parseResponse(resp)
}

func parseResponse(resp *http.Response) (json.RawMessage, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Error != "" {
			return nil, errors.New(errResp.Error)
		}
		return nil, fmt.Errorf("daemon replied with status %d", resp.StatusCode)
	}

	return raw, nil
}

func printRespJSON(resp json.RawMessage) {
	var out bytes.Buffer
	if err := json.Indent(&out, resp, "", "\t"); err != nil {
		fmt.Println(string(resp))
		return
	}
	fmt.Println(out.String())
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[peertrade] %v\n", err)
	os.Exit(1)
}
