package sqlinline

const QInsertDonation = `--sql 2531d804-4ee7-4722-9de7-e362351e0ec1
insert into donations(id, name, phone, purpose, message, country, date)
values ($1::uuid, $2::text, $3::text, $4::text, $5::text, nullif($6::text, ''), $7::timestamptz);
`

const QListDonations = `--sql 67e55168-54f8-46d1-8943-e715afd554ff
select id::text, name, phone, purpose, message, coalesce(country, ''), date
from donations
order by date desc, id desc;
`
