package util

// DCSO hostnamer
// Copyright (c) 2017, 2018, 2026, DCSO GmbH

import (
	"bytes"
	"compress/gzip"
	"errors"
	"sync"

	"github.com/NeowayLabs/wabbit"
	"github.com/NeowayLabs/wabbit/amqp"
	amqp091 "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

// DefaultExchangeType is the exchange type declared for AMQP submissions.
const DefaultExchangeType = "fanout"

// AMQPReconnector establishes a connection to the given AMQP URI and returns
// it together with the exchange type to declare.
type AMQPReconnector func(amqpURI string) (wabbit.Conn, string, error)

// AMQPSubmitter is a StatsSubmitter that sends reports to a RabbitMQ exchange.
type AMQPSubmitter struct {
	sync.Mutex
	URL         string
	Verbose     bool
	SensorID    string
	Target      string
	Conn        wabbit.Conn
	Channel     wabbit.Channel
	ErrorChan   chan wabbit.Error
	Logger      *log.Entry
	Compress    bool
	Reconnector AMQPReconnector
}

var errNotConnected = errors.New("not connected to AMQP server")

func defaultReconnector(amqpURI string) (wabbit.Conn, string, error) {
	conn, err := amqp.Dial(amqpURI)
	if err != nil {
		return nil, DefaultExchangeType, err
	}
	return conn, DefaultExchangeType, nil
}

// connect must be called with the lock held.
func (s *AMQPSubmitter) connect() error {
	conn, exchangeType, err := s.Reconnector(s.URL)
	if err != nil {
		return err
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}
	err = channel.ExchangeDeclare(
		s.Target,     // name
		exchangeType, // type
		wabbit.Option{
			"durable":    true,
			"autoDelete": false,
			"internal":   false,
			"noWait":     false,
		},
	)
	if err != nil {
		conn.Close()
		return err
	}
	s.Conn = conn
	s.Channel = channel
	s.ErrorChan = make(chan wabbit.Error, 1)
	s.Conn.NotifyClose(s.ErrorChan)
	s.Logger.Debugf("submitter established connection to %s", s.URL)
	return nil
}

// ensureConnected reconnects if the server closed the connection since the
// last submission. It must be called with the lock held.
func (s *AMQPSubmitter) ensureConnected() error {
	if s.Conn != nil {
		select {
		case rabbitErr := <-s.ErrorChan:
			if rabbitErr != nil {
				s.Logger.Warnf("RabbitMQ connection failed: %s", rabbitErr.Reason())
			}
			s.Conn = nil
			s.Channel = nil
		default:
			return nil
		}
	}
	if err := s.connect(); err != nil {
		return err
	}
	s.Logger.Infof("reestablished connection to %s", s.URL)
	return nil
}

// MakeAMQPSubmitterWithReconnector creates a new submitter connected to a
// RabbitMQ server at the given URL, using the reconnector function as a means
// to Dial() in order to obtain a Connection object.
func MakeAMQPSubmitterWithReconnector(url string, target string, verbose bool,
	reconnector AMQPReconnector) (*AMQPSubmitter, error) {
	var err error
	mySubmitter := &AMQPSubmitter{
		URL:         url,
		Target:      target,
		Verbose:     verbose,
		Reconnector: reconnector,
		Logger: log.WithFields(log.Fields{
			"domain":    "submitter",
			"submitter": "AMQP",
		}),
	}
	mySubmitter.SensorID, err = GetSensorID()
	if err != nil {
		return nil, err
	}
	mySubmitter.Lock()
	defer mySubmitter.Unlock()
	if err = mySubmitter.connect(); err != nil {
		return nil, err
	}
	return mySubmitter, nil
}

// MakeAMQPSubmitter creates a new submitter connected to a RabbitMQ server
// at the given URL.
func MakeAMQPSubmitter(url string, target string, verbose bool) (*AMQPSubmitter, error) {
	return MakeAMQPSubmitterWithReconnector(url, target, verbose, defaultReconnector)
}

// UseCompression enables gzip compression of submitted payloads.
func (s *AMQPSubmitter) UseCompression() {
	s.Compress = true
}

// Submit sends the rawData payload via the registered RabbitMQ connection.
func (s *AMQPSubmitter) Submit(rawData []byte, key string, contentType string) error {
	return s.SubmitWithHeaders(rawData, key, contentType, nil)
}

// SubmitWithHeaders sends the rawData payload via the registered RabbitMQ
// connection, adding some extra key-value pairs to the header.
func (s *AMQPSubmitter) SubmitWithHeaders(rawData []byte, key string, contentType string, myHeaders map[string]string) error {
	var payload []byte
	var encoding string
	var isCompressed string

	if s.Compress {
		var b bytes.Buffer
		w := gzip.NewWriter(&b)
		if _, err := w.Write(rawData); err != nil {
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		payload = b.Bytes()
		isCompressed = "true"
		encoding = "gzip"
	} else {
		payload = rawData
		isCompressed = "false"
	}

	headers := amqp091.Table{
		"sensor_id":  s.SensorID,
		"compressed": isCompressed,
	}
	for k, v := range myHeaders {
		headers[k] = v
	}
	option := wabbit.Option{
		"contentType":     contentType,
		"contentEncoding": encoding,
		"headers":         headers,
	}

	s.Lock()
	defer s.Unlock()
	if err := s.ensureConnected(); err != nil {
		return err
	}
	if s.Channel == nil {
		return errNotConnected
	}
	err := s.Channel.Publish(
		s.Target, // exchange
		key,      // routing key
		payload,
		option)
	if err != nil {
		s.Logger.Warn(err)
		return err
	}
	s.Logger.WithFields(log.Fields{
		"rawsize":     len(rawData),
		"payloadsize": len(payload),
	}).Infof("submission to %s (%s) successful", s.Target, key)
	return nil
}

// Finish cleans up the AMQP connection.
func (s *AMQPSubmitter) Finish() {
	s.Lock()
	defer s.Unlock()
	if s.Verbose {
		s.Logger.Info("closing connection")
	}
	if s.Channel != nil {
		s.Channel.Close()
		s.Channel = nil
	}
	if s.Conn != nil {
		s.Conn.Close()
		s.Conn = nil
	}
}
