package gxendpoint

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:errcheck
func init() {
	// --- English (default) ---
	message.SetString(language.AmericanEnglish, "msg.connecting_to", "%s connecting to %s:%d timeout %d ms")
	message.SetString(language.AmericanEnglish, "msg.connected_to", "Connected to %s:%d")
	message.SetString(language.AmericanEnglish, "msg.connect_failed", "connect to %s:%d failed: %v")
	message.SetString(language.AmericanEnglish, "msg.already_connected", "Already connected to %s:%d")
	message.SetString(language.AmericanEnglish, "msg.closing_connection", "Closing connection to %s:%d")
	message.SetString(language.AmericanEnglish, "msg.connection_closed", "Connection closed to %s:%d")
	message.SetString(language.AmericanEnglish, "msg.connection_failed", "Connection failed: %v")
	message.SetString(language.AmericanEnglish, "msg.connection_lost", "Connection to %s:%d lost")
	message.SetString(language.AmericanEnglish, "msg.remote_closed", "Remote %s closed the connection")
	message.SetString(language.AmericanEnglish, "msg.reconnecting", "Reconnecting to %s:%d, attempt %d")
	message.SetString(language.AmericanEnglish, "msg.reconnect_failed", "Reconnect to %s:%d failed after %d attempts")
	message.SetString(language.AmericanEnglish, "msg.listening_on", "Listening on %s")
	message.SetString(language.AmericanEnglish, "msg.listen_failed", "Listen on %s failed: %v")
	message.SetString(language.AmericanEnglish, "msg.server_started", "Server %s started")
	message.SetString(language.AmericanEnglish, "msg.server_stopped", "Server %s stopped")
	message.SetString(language.AmericanEnglish, "msg.server_not_running", "Server %s is not running")
	message.SetString(language.AmericanEnglish, "msg.client_accepted", "Client %s connected")
	message.SetString(language.AmericanEnglish, "msg.client_closed", "Client %s disconnected")
	message.SetString(language.AmericanEnglish, "msg.partial_dropped", "Dropped %d bytes of an incomplete message from %s")
	message.SetString(language.AmericanEnglish, "msg.datagram_dropped", "Server %s is not running, datagram from %s dropped")
	message.SetString(language.AmericanEnglish, "msg.reply_limited", "Reply to %s dropped by rate limit")

	// --- German (de) ---
	message.SetString(language.German, "msg.connecting_to", "%s verbindet sich mit %s:%d timeout %d ms")
	message.SetString(language.German, "msg.connected_to", "Verbunden mit %s:%d")
	message.SetString(language.German, "msg.connect_failed", "Verbindung zu %s:%d fehlgeschlagen: %v")
	message.SetString(language.German, "msg.already_connected", "Bereits verbunden mit %s:%d")
	message.SetString(language.German, "msg.closing_connection", "Verbindung zu %s:%d wird geschlossen")
	message.SetString(language.German, "msg.connection_closed", "Verbindung zu %s:%d wurde geschlossen")
	message.SetString(language.German, "msg.connection_failed", "Verbindung fehlgeschlagen: %v")
	message.SetString(language.German, "msg.connection_lost", "Verbindung zu %s:%d verloren")
	message.SetString(language.German, "msg.remote_closed", "Gegenstelle %s hat die Verbindung geschlossen")
	message.SetString(language.German, "msg.reconnecting", "Neuverbindung mit %s:%d, Versuch %d")
	message.SetString(language.German, "msg.reconnect_failed", "Neuverbindung mit %s:%d nach %d Versuchen fehlgeschlagen")
	message.SetString(language.German, "msg.listening_on", "Lauscht auf %s")
	message.SetString(language.German, "msg.listen_failed", "Lauschen auf %s fehlgeschlagen: %v")
	message.SetString(language.German, "msg.server_started", "Server %s gestartet")
	message.SetString(language.German, "msg.server_stopped", "Server %s gestoppt")
	message.SetString(language.German, "msg.server_not_running", "Server %s läuft nicht")
	message.SetString(language.German, "msg.client_accepted", "Client %s verbunden")
	message.SetString(language.German, "msg.client_closed", "Client %s getrennt")
	message.SetString(language.German, "msg.partial_dropped", "%d Bytes einer unvollständigen Nachricht von %s verworfen")
	message.SetString(language.German, "msg.datagram_dropped", "Server %s läuft nicht, Datagramm von %s verworfen")
	message.SetString(language.German, "msg.reply_limited", "Antwort an %s durch Ratenbegrenzung verworfen")

	// --- Finnish (fi) ---
	message.SetString(language.Finnish, "msg.connecting_to", "%s yhdistetään kohteeseen %s:%d timeout %d ms")
	message.SetString(language.Finnish, "msg.connected_to", "Yhdistetty kohteeseen %s:%d")
	message.SetString(language.Finnish, "msg.connect_failed", "Yhteyden muodostus kohteeseen %s:%d epäonnistui: %v")
	message.SetString(language.Finnish, "msg.already_connected", "Yhteys kohteeseen %s:%d on jo muodostettu")
	message.SetString(language.Finnish, "msg.closing_connection", "Suljetaan yhteys kohteeseen %s:%d")
	message.SetString(language.Finnish, "msg.connection_closed", "Yhteys suljettu kohteeseen %s:%d")
	message.SetString(language.Finnish, "msg.connection_failed", "Yhteyden muodostus epäonnistui: %v")
	message.SetString(language.Finnish, "msg.connection_lost", "Yhteys kohteeseen %s:%d katkesi")
	message.SetString(language.Finnish, "msg.remote_closed", "Vastapää %s sulki yhteyden")
	message.SetString(language.Finnish, "msg.reconnecting", "Yhdistetään uudelleen kohteeseen %s:%d, yritys %d")
	message.SetString(language.Finnish, "msg.reconnect_failed", "Uudelleenyhdistäminen kohteeseen %s:%d epäonnistui %d yrityksen jälkeen")
	message.SetString(language.Finnish, "msg.listening_on", "Kuunnellaan osoitetta %s")
	message.SetString(language.Finnish, "msg.listen_failed", "Osoitteen %s kuuntelu epäonnistui: %v")
	message.SetString(language.Finnish, "msg.server_started", "Palvelin %s käynnistetty")
	message.SetString(language.Finnish, "msg.server_stopped", "Palvelin %s pysäytetty")
	message.SetString(language.Finnish, "msg.server_not_running", "Palvelin %s ei ole käynnissä")
	message.SetString(language.Finnish, "msg.client_accepted", "Asiakas %s yhdisti")
	message.SetString(language.Finnish, "msg.client_closed", "Asiakas %s katkaisi yhteyden")
	message.SetString(language.Finnish, "msg.partial_dropped", "Hylättiin %d tavua keskeneräistä viestiä lähteestä %s")
	message.SetString(language.Finnish, "msg.datagram_dropped", "Palvelin %s ei ole käynnissä, datagrammi lähteestä %s hylättiin")
	message.SetString(language.Finnish, "msg.reply_limited", "Vastaus kohteeseen %s hylättiin nopeusrajoituksen vuoksi")

	// --- Swedish (sv) ---
	message.SetString(language.Swedish, "msg.connecting_to", "%s ansluter till %s:%d timeout %d ms")
	message.SetString(language.Swedish, "msg.connected_to", "Ansluten till %s:%d")
	message.SetString(language.Swedish, "msg.connect_failed", "Anslutning till %s:%d misslyckades: %v")
	message.SetString(language.Swedish, "msg.already_connected", "Redan ansluten till %s:%d")
	message.SetString(language.Swedish, "msg.closing_connection", "Stänger anslutning till %s:%d")
	message.SetString(language.Swedish, "msg.connection_closed", "Anslutning stängd till %s:%d")
	message.SetString(language.Swedish, "msg.connection_failed", "Anslutningen misslyckades: %v")
	message.SetString(language.Swedish, "msg.connection_lost", "Anslutningen till %s:%d förlorades")
	message.SetString(language.Swedish, "msg.remote_closed", "Motparten %s stängde anslutningen")
	message.SetString(language.Swedish, "msg.reconnecting", "Återansluter till %s:%d, försök %d")
	message.SetString(language.Swedish, "msg.reconnect_failed", "Återanslutning till %s:%d misslyckades efter %d försök")
	message.SetString(language.Swedish, "msg.listening_on", "Lyssnar på %s")
	message.SetString(language.Swedish, "msg.listen_failed", "Lyssning på %s misslyckades: %v")
	message.SetString(language.Swedish, "msg.server_started", "Server %s startad")
	message.SetString(language.Swedish, "msg.server_stopped", "Server %s stoppad")
	message.SetString(language.Swedish, "msg.server_not_running", "Server %s körs inte")
	message.SetString(language.Swedish, "msg.client_accepted", "Klient %s ansluten")
	message.SetString(language.Swedish, "msg.client_closed", "Klient %s frånkopplad")
	message.SetString(language.Swedish, "msg.partial_dropped", "Kastade %d byte av ett ofullständigt meddelande från %s")
	message.SetString(language.Swedish, "msg.datagram_dropped", "Server %s körs inte, datagram från %s kastat")
	message.SetString(language.Swedish, "msg.reply_limited", "Svar till %s kastat av hastighetsbegränsning")

	// --- Spanish (es) ---
	message.SetString(language.Spanish, "msg.connecting_to", "%s conectando a %s:%d timeout %d ms")
	message.SetString(language.Spanish, "msg.connected_to", "Conectado a %s:%d")
	message.SetString(language.Spanish, "msg.connect_failed", "Error al conectar con %s:%d: %v")
	message.SetString(language.Spanish, "msg.already_connected", "Ya conectado a %s:%d")
	message.SetString(language.Spanish, "msg.closing_connection", "Cerrando conexión con %s:%d")
	message.SetString(language.Spanish, "msg.connection_closed", "Conexión cerrada con %s:%d")
	message.SetString(language.Spanish, "msg.connection_failed", "Error de conexión: %v")
	message.SetString(language.Spanish, "msg.connection_lost", "Conexión con %s:%d perdida")
	message.SetString(language.Spanish, "msg.remote_closed", "El extremo remoto %s cerró la conexión")
	message.SetString(language.Spanish, "msg.reconnecting", "Reconectando a %s:%d, intento %d")
	message.SetString(language.Spanish, "msg.reconnect_failed", "La reconexión con %s:%d falló tras %d intentos")
	message.SetString(language.Spanish, "msg.listening_on", "Escuchando en %s")
	message.SetString(language.Spanish, "msg.listen_failed", "Error al escuchar en %s: %v")
	message.SetString(language.Spanish, "msg.server_started", "Servidor %s iniciado")
	message.SetString(language.Spanish, "msg.server_stopped", "Servidor %s detenido")
	message.SetString(language.Spanish, "msg.server_not_running", "El servidor %s no está en ejecución")
	message.SetString(language.Spanish, "msg.client_accepted", "Cliente %s conectado")
	message.SetString(language.Spanish, "msg.client_closed", "Cliente %s desconectado")
	message.SetString(language.Spanish, "msg.partial_dropped", "Descartados %d bytes de un mensaje incompleto de %s")
	message.SetString(language.Spanish, "msg.datagram_dropped", "El servidor %s no está en ejecución, datagrama de %s descartado")
	message.SetString(language.Spanish, "msg.reply_limited", "Respuesta a %s descartada por límite de tasa")

	// --- Estonian (et) ---
	message.SetString(language.Estonian, "msg.connecting_to", "%s ühendatakse sihtkohta %s:%d timeout %d ms")
	message.SetString(language.Estonian, "msg.connected_to", "Ühendatud sihtkohta %s:%d")
	message.SetString(language.Estonian, "msg.connect_failed", "Ühendamine sihtkohta %s:%d ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.already_connected", "Juba ühendatud sihtkohta %s:%d")
	message.SetString(language.Estonian, "msg.closing_connection", "Suletakse ühendus sihtkohta %s:%d")
	message.SetString(language.Estonian, "msg.connection_closed", "Ühendus suleti sihtkohta %s:%d")
	message.SetString(language.Estonian, "msg.connection_failed", "Ühendus ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.connection_lost", "Ühendus sihtkohta %s:%d katkes")
	message.SetString(language.Estonian, "msg.remote_closed", "Vastaspool %s sulges ühenduse")
	message.SetString(language.Estonian, "msg.reconnecting", "Taasühendamine sihtkohta %s:%d, katse %d")
	message.SetString(language.Estonian, "msg.reconnect_failed", "Taasühendamine sihtkohta %s:%d ebaõnnestus pärast %d katset")
	message.SetString(language.Estonian, "msg.listening_on", "Kuulatakse aadressi %s")
	message.SetString(language.Estonian, "msg.listen_failed", "Aadressi %s kuulamine ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.server_started", "Server %s käivitatud")
	message.SetString(language.Estonian, "msg.server_stopped", "Server %s peatatud")
	message.SetString(language.Estonian, "msg.server_not_running", "Server %s ei tööta")
	message.SetString(language.Estonian, "msg.client_accepted", "Klient %s ühendus")
	message.SetString(language.Estonian, "msg.client_closed", "Klient %s katkestas ühenduse")
	message.SetString(language.Estonian, "msg.partial_dropped", "Loobuti %d baidist poolikust sõnumist allikast %s")
	message.SetString(language.Estonian, "msg.datagram_dropped", "Server %s ei tööta, datagramm allikast %s loobuti")
	message.SetString(language.Estonian, "msg.reply_limited", "Vastus sihtkohta %s loobuti kiirusepiirangu tõttu")
}
