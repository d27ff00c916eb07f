package main

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

func runSSHCommand(client *ssh.Client, cmd string) (string, error) {
	session, err := client.NewSession()
	if err != nil {
		return "", err
	}
	defer session.Close()

	output, err := session.CombinedOutput(cmd)
	return string(output), err
}

func sshConnect(host, port, keyPath, knownHostsPath string) (*ssh.Client, error) {
	authMethods, err := getAuthMethods(keyPath)
	if err != nil {
		return nil, err
	}

	hostKeyCallback, err := hostKeyCallback(knownHostsPath)
	if err != nil {
		return nil, err
	}

	config := &ssh.ClientConfig{
		User:            parseUser(host),
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
	}

	addr := net.JoinHostPort(parseHost(host), port)
	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	return client, nil
}

// hostKeyCallback verifies the server against a known_hosts file, by default
// ~/.ssh/known_hosts. Add the host with ssh-keyscan or one interactive ssh
// login first.
func hostKeyCallback(path string) (ssh.HostKeyCallback, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}

	callback, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("load known hosts %s: %w", path, err)
	}
	return callback, nil
}

func getAuthMethods(keyPath string) ([]ssh.AuthMethod, error) {
	// ssh-agent first, unless a key was given explicitly
	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" && keyPath == "" {
		conn, err := net.Dial("unix", sock)
		if err == nil {
			agentClient := agent.NewClient(conn)
			keys, err := agentClient.List()
			if err == nil && len(keys) > 0 {
				return []ssh.AuthMethod{ssh.PublicKeysCallback(agentClient.Signers)}, nil
			}

			if err := runSSHAdd(); err != nil {
				return nil, fmt.Errorf("ssh-add failed: %w", err)
			}

			conn, err = net.Dial("unix", sock)
			if err == nil {
				agentClient = agent.NewClient(conn)
				return []ssh.AuthMethod{ssh.PublicKeysCallback(agentClient.Signers)}, nil
			}
		}
	}

	var key []byte
	var err error

	if keyPath != "" {
		key, err = os.ReadFile(keyPath)
		if err != nil {
			return nil, fmt.Errorf("read key %s: %w", keyPath, err)
		}
	} else {
		key, err = findSSHKey()
		if err != nil {
			return nil, err
		}
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("parse key (use ssh-add to load passphrase-protected keys): %w", err)
	}

	return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
}

func runSSHAdd() error {
	fmt.Println("No keys in ssh-agent, running ssh-add...")
	cmd := exec.Command("ssh-add")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func findSSHKey() ([]byte, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home dir: %w", err)
	}

	keyNames := []string{"id_ed25519", "id_rsa", "id_ecdsa"}
	for _, name := range keyNames {
		key, err := os.ReadFile(filepath.Join(home, ".ssh", name))
		if err == nil {
			return key, nil
		}
	}

	return nil, fmt.Errorf("no SSH key found in ~/.ssh (tried: %v)", keyNames)
}

// parseUser returns the user part of user@host, defaulting to root.
func parseUser(host string) string {
	if user, _, ok := strings.Cut(host, "@"); ok && user != "" {
		return user
	}
	return "root"
}

func parseHost(host string) string {
	if _, h, ok := strings.Cut(host, "@"); ok {
		return h
	}
	return host
}
