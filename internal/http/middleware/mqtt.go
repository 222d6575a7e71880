package middleware

import (
	"fmt"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// Board push runs over MQTT: the scheduler and admin publish retained
// JSON messages to masjid/<serial>/timetable and masjid/<serial>/adhan;
// boards that call /api/display/connect also get a dedicated client
// subscribed to their command topic.
var (
	boardClients = make(map[string]mqtt.Client)
	clientMutex  sync.RWMutex
	mqttClient   mqtt.Client
	brokerURL    = "tcp://0.0.0.0:1883"
)

// SetBrokerURL configures the broker before InitMQTT runs.
func SetBrokerURL(url string) {
	brokerURL = url
}

func newClientOptions(clientID string) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("client_id", clientID).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Error().Err(err).Str("client_id", clientID).Msg("MQTT connection lost")
	}
	return opts
}

// InitMQTT connects the shared publishing client.
func InitMQTT() error {
	mqttClient = mqtt.NewClient(newClientOptions("minaret-server"))
	if token := mqttClient.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return nil
}

// ConnectBoard creates a client for one display board and subscribes it
// to its command topic. Reconnecting replaces the previous client.
func ConnectBoard(serial string) error {
	client := mqtt.NewClient(newClientOptions("board-" + serial))
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect board %s: %w", serial, token.Error())
	}

	topic := fmt.Sprintf("masjid/%s/commands", serial)
	if token := client.Subscribe(topic, 1, nil); token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return fmt.Errorf("failed to subscribe board %s to %s: %w", serial, topic, token.Error())
	}

	clientMutex.Lock()
	if old, exists := boardClients[serial]; exists {
		old.Disconnect(250)
	}
	boardClients[serial] = client
	clientMutex.Unlock()

	log.Info().Str("serial", serial).Msg("board connected to MQTT")
	return nil
}

// PublishToBoard sends a QoS-1 retained message to masjid/<serial>/<kind>
// via the shared client, so boards see the latest payload on reconnect.
func PublishToBoard(serial, kind string, payload []byte) error {
	if mqttClient == nil {
		return fmt.Errorf("MQTT not initialized")
	}
	topic := fmt.Sprintf("masjid/%s/%s", serial, kind)
	token := mqttClient.Publish(topic, 1, true, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, token.Error())
	}
	return nil
}

// ConnectedBoards lists serials with an attached client.
func ConnectedBoards() []string {
	clientMutex.RLock()
	defer clientMutex.RUnlock()

	serials := make([]string, 0, len(boardClients))
	for serial := range boardClients {
		serials = append(serials, serial)
	}
	return serials
}

// DisconnectBoard drops one board's client.
func DisconnectBoard(serial string) {
	clientMutex.Lock()
	defer clientMutex.Unlock()

	if client, exists := boardClients[serial]; exists {
		client.Disconnect(250)
		delete(boardClients, serial)
		log.Info().Str("serial", serial).Msg("board disconnected from MQTT")
	}
}

// CleanupMQTT disconnects every board client and the shared client.
func CleanupMQTT() {
	clientMutex.Lock()
	defer clientMutex.Unlock()

	for serial, client := range boardClients {
		client.Disconnect(250)
		log.Info().Str("serial", serial).Msg("disconnected board")
	}
	boardClients = make(map[string]mqtt.Client)

	if mqttClient != nil {
		mqttClient.Disconnect(250)
		mqttClient = nil
	}
}
